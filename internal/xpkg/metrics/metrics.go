package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	TrackingLookups   prometheus.Counter
	TrackingAmbiguous prometheus.Counter
	Checkins          prometheus.Counter
	Completions       prometheus.Counter
	InvoicesCreated   prometheus.Counter
	InvoiceFailures   prometheus.Counter
	WebhooksReceived  prometheus.Counter
	WebhooksRejected  prometheus.Counter
	RequestDuration   prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	trackingLookups := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_tracking_lookups_total"})
	trackingAmbiguous := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_tracking_ambiguous_total"})
	checkins := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_checkins_total"})
	completions := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_completions_total"})
	invoicesCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_invoices_created_total"})
	invoiceFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_invoice_failures_total"})
	webhooksReceived := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_webhooks_received_total"})
	webhooksRejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "hb_webhooks_rejected_total"})
	requestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hb_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(
		trackingLookups, trackingAmbiguous,
		checkins, completions,
		invoicesCreated, invoiceFailures,
		webhooksReceived, webhooksRejected,
		requestDuration,
	)

	return &Registry{
		reg:               r,
		TrackingLookups:   trackingLookups,
		TrackingAmbiguous: trackingAmbiguous,
		Checkins:          checkins,
		Completions:       completions,
		InvoicesCreated:   invoicesCreated,
		InvoiceFailures:   invoiceFailures,
		WebhooksReceived:  webhooksReceived,
		WebhooksRejected:  webhooksRejected,
		RequestDuration:   requestDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
