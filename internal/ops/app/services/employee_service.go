package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

// recentOrderCount is how many completed orders the pay view details; older
// ones fold into the running totals.
const recentOrderCount = 5

// PayView is the computed pay summary for one employee.
type PayView struct {
	Period         models.PayPeriod
	PeriodEarnings decimal.Decimal
	TotalOrders    int
	TotalItems     int
	TotalEarnings  decimal.Decimal
	Recent         []models.Order
}

type EmployeeService struct {
	employeeRepo core.IEmployeeRepo
	orderRepo    core.IOrderRepo
	periodRepo   core.IPayPeriodRepo
	mylog        logger.Logger
}

func NewEmployeeService(
	employeeRepo core.IEmployeeRepo,
	orderRepo core.IOrderRepo,
	periodRepo core.IPayPeriodRepo,
	mylog logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		orderRepo:    orderRepo,
		periodRepo:   periodRepo,
		mylog:        mylog,
	}
}

func (es *EmployeeService) ListActive(ctx context.Context) ([]models.Employee, error) {
	employees, err := es.employeeRepo.ListActive(ctx)
	if err != nil {
		es.mylog.Action("list_employees").Error("Failed to list employees", err)
		return nil, fmt.Errorf("cannot list employees: %w", err)
	}
	return employees, nil
}

// WorkQueue returns the employee's open orders, oldest first, so the backlog
// is worked in arrival order. Assignment matches by linked record id;
// legacy rows that still store a bare name match case-insensitively.
func (es *EmployeeService) WorkQueue(ctx context.Context, employeeID, employeeName string) ([]models.Order, error) {
	mylog := es.mylog.Action("work_queue").With("employee_id", employeeID)

	open, err := es.orderRepo.ListOpen(ctx)
	if err != nil {
		mylog.Error("Failed to list open orders", err)
		return nil, fmt.Errorf("cannot list open orders: %w", err)
	}

	queue := make([]models.Order, 0)
	for _, order := range open {
		if order.AssignedTo.Matches(employeeID, employeeName) {
			queue = append(queue, order)
		}
	}
	mylog.Debug("Work queue built", "open_orders", len(open), "assigned", len(queue))
	return queue, nil
}

// PaySummary partitions the employee's completed orders into the most recent
// few (detail rows) and the rest (totals only). Aggregate totals cover the
// full completed set. Current-period earnings equal all-time unpaid earnings:
// closed periods are marked Paid, so everything still visible is owed.
func (es *EmployeeService) PaySummary(ctx context.Context, employeeID, employeeName string) (PayView, error) {
	mylog := es.mylog.Action("pay_summary").With("employee_id", employeeID)

	completed, err := es.orderRepo.ListCompleted(ctx)
	if err != nil {
		mylog.Error("Failed to list completed orders", err)
		return PayView{}, fmt.Errorf("cannot list completed orders: %w", err)
	}

	mine := make([]models.Order, 0)
	for _, order := range completed {
		if completedBy(order).Matches(employeeID, employeeName) {
			mine = append(mine, order)
		}
	}

	// Most recently completed first; rows without a date sink to the end.
	sort.SliceStable(mine, func(i, j int) bool {
		di, dj := mine[i].CompletedDate, mine[j].CompletedDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.After(*dj)
		}
	})

	view := PayView{
		TotalOrders:   len(mine),
		TotalEarnings: decimal.Zero,
	}
	for _, order := range mine {
		view.TotalItems += order.ItemsDigitized
		view.TotalEarnings = view.TotalEarnings.Add(OrderPay(order).Total)
	}
	if len(mine) > recentOrderCount {
		view.Recent = mine[:recentOrderCount]
	} else {
		view.Recent = mine
	}

	period, err := es.periodRepo.Current(ctx)
	switch {
	case errors.Is(err, core.ErrNoCurrentPeriod):
		period = models.PayPeriod{Name: core.DefaultPeriodName}
	case err != nil:
		mylog.Error("Failed to resolve pay period", err)
		return PayView{}, fmt.Errorf("cannot resolve pay period: %w", err)
	}
	view.Period = period
	view.PeriodEarnings = view.TotalEarnings

	mylog.Debug("Pay summary built", "orders", view.TotalOrders, "earnings", view.TotalEarnings.StringFixed(2))
	return view, nil
}

// completedBy is the employee credited with an order: the completion link
// when present, otherwise the check-in assignment.
func completedBy(order models.Order) models.Assignee {
	if !order.CompletedBy.IsZero() {
		return order.CompletedBy
	}
	return order.AssignedTo
}

// OrderPay reads the stored pay, falling back to recomputation for rows
// completed before pay fields were persisted. The stored value is
// authoritative; the fallback uses the same formula that wrote it.
func OrderPay(order models.Order) models.Pay {
	if !order.Pay.Total.IsZero() {
		return order.Pay
	}
	return ComputePay(order.ItemsDigitized)
}
