package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

// CheckInUpdate is everything check-in persists onto an order in one write.
type CheckInUpdate struct {
	ItemsReceived int
	ExtraItems    int
	ExtraCharge   decimal.Decimal
	Status        string
	InvoiceID     string
	EmployeeID    string
	Notes         string
}

// CompletionUpdate is everything completion persists onto an order in one write.
type CompletionUpdate struct {
	ItemsDigitized int
	CompletedDate  time.Time
	Status         string
	EmployeeID     string
	Pay            models.Pay
}

type IOrderRepo interface {
	GetByID(ctx context.Context, id string) (models.Order, error)
	// FindByTracking matches the code against all tracking fields; exact
	// selects equality vs suffix matching.
	FindByTracking(ctx context.Context, code string, exact bool, limit int) ([]models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (models.Order, error)
	// ListOpen returns orders not yet in the terminal status, oldest first.
	ListOpen(ctx context.Context) ([]models.Order, error)
	ListCompleted(ctx context.Context) ([]models.Order, error)
	ListOrderItems(ctx context.Context, ids []string) ([]models.OrderItem, error)

	ApplyCheckIn(ctx context.Context, orderID string, upd CheckInUpdate) (models.Order, error)
	ApplyCompletion(ctx context.Context, orderID string, upd CompletionUpdate) (models.Order, error)
	UpdateNotes(ctx context.Context, orderID, notes string) (models.Order, error)
	MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error
}

type IEmployeeRepo interface {
	ListActive(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (models.Employee, error)
}

type IPayPeriodRepo interface {
	// Current returns the most-recent-by-start-date period not yet marked
	// Paid, or ErrNoCurrentPeriod.
	Current(ctx context.Context) (models.PayPeriod, error)
}

// InvoiceParams carries the overage metadata stamped onto a new invoice.
type InvoiceParams struct {
	OrderNumber  string
	ExtraItems   int
	DaysUntilDue int
}

type IBilling interface {
	FindOrCreateCustomer(ctx context.Context, email, name, orderNumber string) (models.Customer, error)
	CreateInvoice(ctx context.Context, customerID string, params InvoiceParams) (models.Invoice, error)
	AddInvoiceItem(ctx context.Context, customerID, invoiceID string, amountCents int64, description string) error
	FinalizeInvoice(ctx context.Context, invoiceID string) (models.Invoice, error)
	SendInvoice(ctx context.Context, invoiceID string) (models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (models.Invoice, error)
}

// IWebhookVerifier turns a raw webhook delivery into a verified event, or
// fails closed.
type IWebhookVerifier interface {
	ConstructEvent(payload []byte, sigHeader string) (models.BillingEvent, error)
}
