package handle

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/services"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/dto"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBody  = 1 << 20
)

type WebhookHandler struct {
	verifier       core.IWebhookVerifier
	webhookService *services.WebhookService
	metrics        *metrics.Registry
	mylog          logger.Logger
}

func NewWebhookHandler(
	verifier core.IWebhookVerifier,
	webhookService *services.WebhookService,
	reg *metrics.Registry,
	mylog logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:       verifier,
		webhookService: webhookService,
		metrics:        reg,
		mylog:          mylog,
	}
}

// Billing receives billing provider webhooks. The raw body is verified before
// any JSON parsing; a bad signature is rejected with no side effects. A
// verified event is always acknowledged with {received: true}, even when the
// business follow-up turns out to be a no-op, so the provider stops retrying.
func (wh *WebhookHandler) Billing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			wh.mylog.Action("webhook_read_failed").Error("Failed to read webhook body", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to read request body"))
			return
		}

		event, err := wh.verifier.ConstructEvent(payload, r.Header.Get(signatureHeader))
		if err != nil {
			wh.metrics.WebhooksRejected.Inc()
			wh.mylog.Action("webhook_rejected").Warn("Webhook signature rejected", "error", err.Error())
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := wh.webhookService.Handle(ctx, event); err != nil {
			// Store failures get a 500 so the provider redelivers later.
			writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.WebhookResponse{Received: true})
	}
}
