package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/services"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

// stubVerifier accepts any payload carrying the magic header value and rejects
// everything else, standing in for the HMAC verifier.
type stubVerifier struct {
	event models.BillingEvent
}

func (s *stubVerifier) ConstructEvent(payload []byte, sigHeader string) (models.BillingEvent, error) {
	if sigHeader != "valid" {
		return models.BillingEvent{}, fmt.Errorf("%w: no matching signature", core.ErrBadSignature)
	}
	return s.event, nil
}

// stubOrderRepo is the minimal order repo the webhook path touches.
type stubOrderRepo struct {
	order models.Order
	paid  []string
	err   error
}

func (s *stubOrderRepo) GetByID(context.Context, string) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) FindByTracking(context.Context, string, bool, int) ([]models.Order, error) {
	return nil, s.err
}

func (s *stubOrderRepo) FindByOrderNumber(context.Context, string) (models.Order, error) {
	if s.err != nil {
		return models.Order{}, s.err
	}
	if s.order.ID == "" {
		return models.Order{}, core.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListOpen(context.Context) ([]models.Order, error)      { return nil, s.err }
func (s *stubOrderRepo) ListCompleted(context.Context) ([]models.Order, error) { return nil, s.err }

func (s *stubOrderRepo) ListOrderItems(context.Context, []string) ([]models.OrderItem, error) {
	return nil, s.err
}

func (s *stubOrderRepo) ApplyCheckIn(context.Context, string, core.CheckInUpdate) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) ApplyCompletion(context.Context, string, core.CompletionUpdate) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) UpdateNotes(context.Context, string, string) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) MarkPaid(_ context.Context, orderID string, _ time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.paid = append(s.paid, orderID)
	return nil
}

func newWebhookHandler(repo *stubOrderRepo, event models.BillingEvent) *WebhookHandler {
	reg := metrics.NewRegistry()
	mylog := logger.Discard()
	svc := services.NewWebhookService(repo, reg, mylog)
	return NewWebhookHandler(&stubVerifier{event: event}, svc, reg, mylog)
}

func postWebhook(h *WebhookHandler, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", strings.NewReader(`{}`))
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rr := httptest.NewRecorder()
	h.Billing().ServeHTTP(rr, req)
	return rr
}

func TestBillingWebhookAccepted(t *testing.T) {
	repo := &stubOrderRepo{order: models.Order{ID: "rec1", OrderNumber: "HB-1001"}}
	h := newWebhookHandler(repo, models.BillingEvent{
		ID:          "evt_1",
		Type:        "invoice.paid",
		OrderNumber: "HB-1001",
	})

	rr := postWebhook(h, "valid")

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body["received"])
	assert.Equal(t, []string{"rec1"}, repo.paid)
}

func TestBillingWebhookBadSignature(t *testing.T) {
	repo := &stubOrderRepo{order: models.Order{ID: "rec1", OrderNumber: "HB-1001"}}
	h := newWebhookHandler(repo, models.BillingEvent{Type: "invoice.paid", OrderNumber: "HB-1001"})

	rr := postWebhook(h, "forged")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, repo.paid)
}

func TestBillingWebhookStoreFailureGets500(t *testing.T) {
	repo := &stubOrderRepo{err: core.ErrStoreUnavailable}
	h := newWebhookHandler(repo, models.BillingEvent{Type: "invoice.paid", OrderNumber: "HB-1001"})

	rr := postWebhook(h, "valid")

	// The provider redelivers on 5xx, which is what a store outage needs.
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestBillingWebhookIgnoredEventStillAcknowledged(t *testing.T) {
	repo := &stubOrderRepo{}
	h := newWebhookHandler(repo, models.BillingEvent{ID: "evt_1", Type: "customer.created"})

	rr := postWebhook(h, "valid")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, repo.paid)
}
