package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/services"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/dto"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
	mylog           logger.Logger
}

func NewEmployeeHandler(employeeService *services.EmployeeService, mylog logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		mylog:           mylog,
	}
}

// List returns all active employees.
func (eh *EmployeeHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		employees, err := eh.employeeService.ListActive(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := dto.EmployeesResponse{Employees: make([]dto.EmployeeResponse, 0, len(employees))}
		for _, emp := range employees {
			resp.Employees = append(resp.Employees, dto.EmployeeResponse{ID: emp.ID, Name: emp.Name})
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

// WorkQueue returns the employee's open orders, oldest first. The name query
// parameter backs legacy rows where assignment is still a plain name.
func (eh *EmployeeHandler) WorkQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := r.PathValue("id")
		employeeName := r.URL.Query().Get("name")

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		orders, err := eh.employeeService.WorkQueue(ctx, employeeID, employeeName)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := dto.WorkQueueResponse{Orders: make([]dto.OrderDetail, 0, len(orders))}
		for _, order := range orders {
			resp.Orders = append(resp.Orders, orderDetail(order))
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

// PaySummary returns the employee's pay view: current period, aggregate
// stats, and the most recently completed orders.
func (eh *EmployeeHandler) PaySummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := r.PathValue("id")
		employeeName := r.URL.Query().Get("name")

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		view, err := eh.employeeService.PaySummary(ctx, employeeID, employeeName)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := dto.PayViewResponse{
			CurrentPeriod: dto.PayPeriodResponse{
				ID:       view.Period.ID,
				Name:     view.Period.Name,
				Status:   view.Period.Status,
				Earnings: view.PeriodEarnings.InexactFloat64(),
			},
			Stats: dto.PayStats{
				TotalOrders:   view.TotalOrders,
				TotalItems:    view.TotalItems,
				TotalEarnings: view.TotalEarnings.InexactFloat64(),
			},
			RecentOrders: make([]dto.RecentOrder, 0, len(view.Recent)),
		}
		for _, order := range view.Recent {
			recent := dto.RecentOrder{
				ID:          order.ID,
				OrderNumber: order.OrderNumber,
				Items:       order.ItemsDigitized,
				Pay:         services.OrderPay(order).Total.InexactFloat64(),
			}
			if order.CompletedDate != nil {
				recent.CompletedDate = order.CompletedDate.Format("2006-01-02")
			}
			resp.RecentOrders = append(resp.RecentOrders, recent)
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}
