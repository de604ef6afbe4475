package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/dto"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

type CheckinService struct {
	orderRepo core.IOrderRepo
	billing   core.IBilling
	metrics   *metrics.Registry
	mylog     logger.Logger
}

func NewCheckinService(orderRepo core.IOrderRepo, billing core.IBilling, reg *metrics.Registry, mylog logger.Logger) *CheckinService {
	return &CheckinService{
		orderRepo: orderRepo,
		billing:   billing,
		metrics:   reg,
		mylog:     mylog,
	}
}

// CheckIn records a physical package intake: compares received against
// expected items, invoices the customer for any overage, and moves the order
// to the ready-to-digitize status. A billing outage degrades to "no invoice"
// instead of failing the request: intake at the dock must never block on the
// billing provider. Re-checking-in an order is an idempotent overwrite.
func (cs *CheckinService) CheckIn(ctx context.Context, orderID string, req dto.CheckInRequest) (models.Order, *models.Invoice, error) {
	mylog := cs.mylog.Action("checkin").With("order_id", orderID)

	if req.ItemsReceived < 0 {
		return models.Order{}, nil, fmt.Errorf("%w: itemsReceived must not be negative", core.ErrInvalidInput)
	}
	if req.EmployeeID == "" {
		return models.Order{}, nil, fmt.Errorf("%w: employeeId is required", core.ErrInvalidInput)
	}

	order, err := cs.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		mylog.Error("Failed to fetch order", err)
		return models.Order{}, nil, err
	}

	extra := req.ItemsReceived - order.ExpectedItems
	if extra < 0 {
		extra = 0
	}
	extraCharge := decimal.Zero
	if extra > 0 {
		extraCharge = core.UnitOveragePrice.Mul(decimal.NewFromInt(int64(extra)))
	}

	var invoice *models.Invoice
	switch {
	case extra > 0 && order.CustomerEmail != "":
		inv, err := cs.createOverageInvoice(ctx, order, extra, extraCharge)
		if err != nil {
			// Deliberate partial-failure policy: record the extras, skip the
			// invoice, reconcile manually from the logs.
			cs.metrics.InvoiceFailures.Inc()
			mylog.Warn("Invoicing failed, proceeding without invoice",
				"order_number", order.OrderNumber, "extra_items", extra, "error", err.Error())
		} else {
			cs.metrics.InvoicesCreated.Inc()
			invoice = &inv
		}
	case extra > 0:
		mylog.Warn("No customer email on order, skipping invoicing",
			"order_number", order.OrderNumber, "extra_items", extra)
	}

	upd := core.CheckInUpdate{
		ItemsReceived: req.ItemsReceived,
		ExtraItems:    extra,
		ExtraCharge:   extraCharge,
		Status:        core.StatusReadyToDigitize,
		EmployeeID:    req.EmployeeID,
		Notes:         req.Notes,
	}
	if invoice != nil {
		upd.InvoiceID = invoice.ID
	}

	updated, err := cs.orderRepo.ApplyCheckIn(ctx, orderID, upd)
	if err != nil {
		mylog.Error("Failed to persist check-in", err)
		return models.Order{}, nil, fmt.Errorf("cannot save check-in: %w", err)
	}

	cs.metrics.Checkins.Inc()
	mylog.Info("Check-in recorded",
		"order_number", updated.OrderNumber,
		"items_received", req.ItemsReceived,
		"extra_items", extra,
		"invoiced", invoice != nil,
	)
	return updated, invoice, nil
}

// createOverageInvoice runs the billing sequence in its required order:
// customer, draft invoice, line item, finalize, send.
func (cs *CheckinService) createOverageInvoice(ctx context.Context, order models.Order, extra int, charge decimal.Decimal) (models.Invoice, error) {
	customer, err := cs.billing.FindOrCreateCustomer(ctx, order.CustomerEmail, order.CustomerName, order.OrderNumber)
	if err != nil {
		return models.Invoice{}, err
	}

	inv, err := cs.billing.CreateInvoice(ctx, customer.ID, core.InvoiceParams{
		OrderNumber:  order.OrderNumber,
		ExtraItems:   extra,
		DaysUntilDue: core.InvoiceDueDays,
	})
	if err != nil {
		return models.Invoice{}, err
	}

	amountCents := charge.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	description := fmt.Sprintf("%d extra items @ $%s/each for order %s",
		extra, core.UnitOveragePrice.StringFixed(2), order.OrderNumber)
	if err := cs.billing.AddInvoiceItem(ctx, customer.ID, inv.ID, amountCents, description); err != nil {
		return models.Invoice{}, err
	}

	finalized, err := cs.billing.FinalizeInvoice(ctx, inv.ID)
	if err != nil {
		return models.Invoice{}, err
	}
	if _, err := cs.billing.SendInvoice(ctx, finalized.ID); err != nil {
		return models.Invoice{}, err
	}
	return finalized, nil
}
