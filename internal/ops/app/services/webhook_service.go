package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

type WebhookService struct {
	orderRepo core.IOrderRepo
	metrics   *metrics.Registry
	mylog     logger.Logger
}

func NewWebhookService(orderRepo core.IOrderRepo, reg *metrics.Registry, mylog logger.Logger) *WebhookService {
	return &WebhookService{
		orderRepo: orderRepo,
		metrics:   reg,
		mylog:     mylog,
	}
}

// Handle runs the business follow-up for a verified billing event. Events
// with nothing to do are acknowledged and dropped so the provider stops
// redelivering them; only a record-store failure is surfaced, since that
// delivery is worth a retry.
func (ws *WebhookService) Handle(ctx context.Context, event models.BillingEvent) error {
	mylog := ws.mylog.Action("billing_webhook").With("event_id", event.ID, "event_type", event.Type)
	ws.metrics.WebhooksReceived.Inc()

	switch event.Type {
	case "invoice.paid", "invoice.payment_succeeded":
		return ws.invoicePaid(ctx, mylog, event)
	default:
		mylog.Debug("Ignoring unhandled event type")
		return nil
	}
}

func (ws *WebhookService) invoicePaid(ctx context.Context, mylog logger.Logger, event models.BillingEvent) error {
	if event.OrderNumber == "" {
		mylog.Info("Paid invoice carries no order number tag, dropping")
		return nil
	}

	order, err := ws.orderRepo.FindByOrderNumber(ctx, event.OrderNumber)
	if err != nil {
		if errors.Is(err, core.ErrOrderNotFound) {
			mylog.Warn("Paid invoice references an unknown order", "order_number", event.OrderNumber)
			return nil
		}
		mylog.Error("Failed to look up order for paid invoice", err, "order_number", event.OrderNumber)
		return fmt.Errorf("cannot look up order: %w", err)
	}

	if err := ws.orderRepo.MarkPaid(ctx, order.ID, time.Now().UTC()); err != nil {
		mylog.Error("Failed to mark order paid", err, "order_id", order.ID)
		return fmt.Errorf("cannot mark order paid: %w", err)
	}

	mylog.Info("Order marked paid", "order_number", order.OrderNumber, "invoice_id", event.InvoiceID)
	return nil
}
