package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// fakeOrderRepo implements core.IOrderRepo with programmable behavior and
// call recording.
type fakeOrderRepo struct {
	orders     map[string]models.Order
	byTracking func(code string, exact bool, limit int) []models.Order
	orderItems []models.OrderItem
	open       []models.Order
	completed  []models.Order

	trackingCalls []trackingCall
	checkIns      []core.CheckInUpdate
	completions   []core.CompletionUpdate
	notes         []string
	paid          []string

	err error
}

type trackingCall struct {
	code  string
	exact bool
	limit int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]models.Order{}}
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	order, ok := f.orders[id]
	if !ok {
		return models.Order{}, core.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) FindByTracking(_ context.Context, code string, exact bool, limit int) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.trackingCalls = append(f.trackingCalls, trackingCall{code: code, exact: exact, limit: limit})
	if f.byTracking == nil {
		return nil, nil
	}
	return f.byTracking(code, exact, limit), nil
}

func (f *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	for _, order := range f.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return models.Order{}, core.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListOpen(_ context.Context) ([]models.Order, error) {
	return f.open, f.err
}

func (f *fakeOrderRepo) ListCompleted(_ context.Context) ([]models.Order, error) {
	return f.completed, f.err
}

func (f *fakeOrderRepo) ListOrderItems(_ context.Context, _ []string) ([]models.OrderItem, error) {
	return f.orderItems, f.err
}

func (f *fakeOrderRepo) ApplyCheckIn(_ context.Context, orderID string, upd core.CheckInUpdate) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, core.ErrOrderNotFound
	}
	f.checkIns = append(f.checkIns, upd)
	order.ItemsReceived = upd.ItemsReceived
	order.ExtraItems = upd.ExtraItems
	order.ExtraCharge = upd.ExtraCharge
	order.Status = upd.Status
	order.Notes = upd.Notes
	order.AssignedTo = models.Assignee{ID: upd.EmployeeID}
	if upd.InvoiceID != "" {
		order.InvoiceID = upd.InvoiceID
	}
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeOrderRepo) ApplyCompletion(_ context.Context, orderID string, upd core.CompletionUpdate) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, core.ErrOrderNotFound
	}
	f.completions = append(f.completions, upd)
	order.ItemsDigitized = upd.ItemsDigitized
	order.Completed = true
	order.CompletedDate = &upd.CompletedDate
	order.Status = upd.Status
	order.Pay = upd.Pay
	if upd.EmployeeID != "" {
		order.CompletedBy = models.Assignee{ID: upd.EmployeeID}
	}
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeOrderRepo) UpdateNotes(_ context.Context, orderID, notes string) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, core.ErrOrderNotFound
	}
	f.notes = append(f.notes, notes)
	order.Notes = notes
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, orderID string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, orderID)
	return nil
}

// fakeBilling records the billing call sequence.
type fakeBilling struct {
	customers map[string]models.Customer // keyed by email

	customerCalls []string
	invoiceCalls  []core.InvoiceParams
	itemCalls     []invoiceItemCall
	finalized     []string
	sent          []string

	err error
}

type invoiceItemCall struct {
	customerID  string
	invoiceID   string
	amountCents int64
	description string
}

func newFakeBilling() *fakeBilling {
	return &fakeBilling{customers: map[string]models.Customer{}}
}

func (f *fakeBilling) FindOrCreateCustomer(_ context.Context, email, name, _ string) (models.Customer, error) {
	if f.err != nil {
		return models.Customer{}, f.err
	}
	f.customerCalls = append(f.customerCalls, email)
	if existing, ok := f.customers[email]; ok {
		return existing, nil
	}
	customer := models.Customer{ID: "cus_" + email, Email: email, Name: name}
	f.customers[email] = customer
	return customer, nil
}

func (f *fakeBilling) CreateInvoice(_ context.Context, _ string, params core.InvoiceParams) (models.Invoice, error) {
	if f.err != nil {
		return models.Invoice{}, f.err
	}
	f.invoiceCalls = append(f.invoiceCalls, params)
	return models.Invoice{ID: "in_test", Status: "draft"}, nil
}

func (f *fakeBilling) AddInvoiceItem(_ context.Context, customerID, invoiceID string, amountCents int64, description string) error {
	if f.err != nil {
		return f.err
	}
	f.itemCalls = append(f.itemCalls, invoiceItemCall{
		customerID:  customerID,
		invoiceID:   invoiceID,
		amountCents: amountCents,
		description: description,
	})
	return nil
}

func (f *fakeBilling) FinalizeInvoice(_ context.Context, invoiceID string) (models.Invoice, error) {
	if f.err != nil {
		return models.Invoice{}, f.err
	}
	f.finalized = append(f.finalized, invoiceID)
	return models.Invoice{
		ID:        invoiceID,
		Status:    "open",
		HostedURL: "https://billing.example/" + invoiceID,
		AmountDue: decimalFromCents(f.lastItemCents()),
	}, nil
}

func (f *fakeBilling) SendInvoice(_ context.Context, invoiceID string) (models.Invoice, error) {
	if f.err != nil {
		return models.Invoice{}, f.err
	}
	f.sent = append(f.sent, invoiceID)
	return models.Invoice{ID: invoiceID, Status: "open"}, nil
}

func (f *fakeBilling) GetInvoice(_ context.Context, invoiceID string) (models.Invoice, error) {
	return models.Invoice{ID: invoiceID}, f.err
}

func (f *fakeBilling) lastItemCents() int64 {
	if len(f.itemCalls) == 0 {
		return 0
	}
	return f.itemCalls[len(f.itemCalls)-1].amountCents
}

type fakeEmployeeRepo struct {
	employees []models.Employee
	err       error
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]models.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (models.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return models.Employee{}, core.ErrEmployeeNotFound
}

type fakePeriodRepo struct {
	period models.PayPeriod
	err    error
}

func (f *fakePeriodRepo) Current(_ context.Context) (models.PayPeriod, error) {
	if f.err != nil {
		return models.PayPeriod{}, f.err
	}
	return f.period, nil
}
