package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

type OrderRepo struct {
	client *Client
}

func NewOrderRepo(client *Client) *OrderRepo {
	return &OrderRepo{client: client}
}

func (or *OrderRepo) GetByID(ctx context.Context, id string) (models.Order, error) {
	rec, err := or.client.GetRecord(ctx, tableOrders, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return models.Order{}, core.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return mapOrder(rec), nil
}

func (or *OrderRepo) FindByTracking(ctx context.Context, code string, exact bool, limit int) ([]models.Order, error) {
	recs, err := or.client.ListRecords(ctx, tableOrders, ListOptions{
		Formula:    trackingFormula(code, exact),
		MaxRecords: limit,
	})
	if err != nil {
		return nil, err
	}
	return mapOrders(recs), nil
}

func (or *OrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	recs, err := or.client.ListRecords(ctx, tableOrders, ListOptions{
		Formula:    fieldEquals(fldOrderNumber, orderNumber),
		MaxRecords: 1,
	})
	if err != nil {
		return models.Order{}, err
	}
	if len(recs) == 0 {
		return models.Order{}, core.ErrOrderNotFound
	}
	return mapOrder(recs[0]), nil
}

// ListOpen returns every order still in flight, oldest first: the backlog is
// worked in arrival order.
func (or *OrderRepo) ListOpen(ctx context.Context) ([]models.Order, error) {
	recs, err := or.client.ListRecords(ctx, tableOrders, ListOptions{
		Formula: "NOT(" + fieldEquals(fldStatus, core.StatusCompleted) + ")",
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedTime.Before(recs[j].CreatedTime) })
	return mapOrders(recs), nil
}

func (or *OrderRepo) ListCompleted(ctx context.Context) ([]models.Order, error) {
	recs, err := or.client.ListRecords(ctx, tableOrders, ListOptions{
		Formula: "{" + fldCompleted + "} = TRUE()",
	})
	if err != nil {
		return nil, err
	}
	return mapOrders(recs), nil
}

func (or *OrderRepo) ListOrderItems(ctx context.Context, ids []string) ([]models.OrderItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	recs, err := or.client.ListRecords(ctx, tableOrderItems, ListOptions{
		Formula: recordIDFormula(ids),
	})
	if err != nil {
		return nil, err
	}
	items := make([]models.OrderItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, models.OrderItem{
			ID:          rec.ID,
			ProductName: rec.str(fldItemProduct),
			Quantity:    rec.intval(fldItemQuantity),
		})
	}
	return items, nil
}

func (or *OrderRepo) ApplyCheckIn(ctx context.Context, orderID string, upd core.CheckInUpdate) (models.Order, error) {
	fields := map[string]any{
		fldItemsReceived: upd.ItemsReceived,
		fldExtraItems:    upd.ExtraItems,
		fldExtraCharge:   upd.ExtraCharge.InexactFloat64(),
		fldStatus:        upd.Status,
		// Assignment is always the single linked employee record, never a
		// free-text name.
		fldAssignedTo: []string{upd.EmployeeID},
		// Written unconditionally so a cleared note does not survive a
		// re-check-in.
		fldNotes: upd.Notes,
	}
	if upd.InvoiceID != "" {
		fields[fldInvoiceID] = upd.InvoiceID
	}
	return or.update(ctx, orderID, fields)
}

func (or *OrderRepo) ApplyCompletion(ctx context.Context, orderID string, upd core.CompletionUpdate) (models.Order, error) {
	fields := map[string]any{
		fldItemsDigitized: upd.ItemsDigitized,
		fldCompleted:      true,
		fldCompletedDate:  upd.CompletedDate.Format("2006-01-02"),
		fldStatus:         upd.Status,
		fldPayBase:        upd.Pay.Base.InexactFloat64(),
		fldPayPerItem:     upd.Pay.PerItem.InexactFloat64(),
		fldPayTotal:       upd.Pay.Total.InexactFloat64(),
	}
	if upd.EmployeeID != "" {
		fields[fldCompletedBy] = []string{upd.EmployeeID}
	}
	return or.update(ctx, orderID, fields)
}

func (or *OrderRepo) UpdateNotes(ctx context.Context, orderID, notes string) (models.Order, error) {
	return or.update(ctx, orderID, map[string]any{fldNotes: notes})
}

func (or *OrderRepo) MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	_, err := or.update(ctx, orderID, map[string]any{
		fldInvoicePaid: true,
		fldPaidDate:    paidAt.Format("2006-01-02"),
	})
	return err
}

func (or *OrderRepo) update(ctx context.Context, orderID string, fields map[string]any) (models.Order, error) {
	rec, err := or.client.UpdateRecord(ctx, tableOrders, orderID, fields)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return models.Order{}, core.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return mapOrder(rec), nil
}

func mapOrders(recs []Record) []models.Order {
	orders := make([]models.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, mapOrder(rec))
	}
	return orders
}

func mapOrder(rec Record) models.Order {
	var tracking []string
	for _, field := range trackingFields {
		if v := rec.str(field); v != "" {
			tracking = append(tracking, v)
		}
	}

	return models.Order{
		ID:              rec.ID,
		CreatedAt:       rec.CreatedTime,
		OrderNumber:     rec.str(fldOrderNumber),
		CustomerName:    customerName(rec),
		CustomerEmail:   rec.str(fldCustomerEmail),
		ExpectedItems:   rec.intval(fldExpectedItems),
		ItemsReceived:   rec.intval(fldItemsReceived),
		ItemsDigitized:  rec.intval(fldItemsDigitized),
		ExtraItems:      rec.intval(fldExtraItems),
		ExtraCharge:     decimal.NewFromFloat(rec.num(fldExtraCharge)),
		Status:          rec.str(fldStatus),
		InvoiceID:       rec.str(fldInvoiceID),
		InvoicePaid:     rec.boolean(fldInvoicePaid),
		PaidDate:        rec.date(fldPaidDate),
		AssignedTo:      assignee(rec, fldAssignedTo, fldAssignedName),
		CompletedBy:     assignee(rec, fldCompletedBy, fldCompletedName),
		Completed:       rec.boolean(fldCompleted),
		CompletedDate:   rec.date(fldCompletedDate),
		TrackingNumbers: tracking,
		Notes:           rec.str(fldNotes),
		OrderItemIDs:    rec.strs(fldOrderItems),
		Pay: models.Pay{
			Base:    decimal.NewFromFloat(rec.num(fldPayBase)),
			PerItem: decimal.NewFromFloat(rec.num(fldPayPerItem)),
			Total:   decimal.NewFromFloat(rec.num(fldPayTotal)),
		},
	}
}

// customerName prefers the name lookup; the raw customer link's first element
// is the legacy fallback.
func customerName(rec Record) string {
	if name := rec.str(fldCustomerName); name != "" {
		return name
	}
	return rec.str(fldCustomer)
}

// assignee absorbs both schema revisions of an employee reference: a linked
// record array, or a bare name string on legacy rows.
func assignee(rec Record, linkField, nameField string) models.Assignee {
	a := models.Assignee{Name: rec.str(nameField)}
	switch v := rec.Fields[linkField].(type) {
	case string:
		if a.Name == "" {
			a.Name = v
		}
	case []any:
		if len(v) > 0 {
			if id, ok := v[0].(string); ok {
				a.ID = id
			}
		}
	}
	return a
}
