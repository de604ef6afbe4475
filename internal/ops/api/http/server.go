package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/adapter/billing"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/adapter/store"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/api/http/handle"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/services"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/config"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

var ErrServerClosed = errors.New("server closed")

type Server struct {
	mux          *http.ServeMux
	cfg          *config.Config
	srv          *http.Server
	serverParams *core.ServerParams
	mylog        logger.Logger
	metrics      *metrics.Registry
	ctx          context.Context
	mu           sync.Mutex
}

func NewServer(ctx context.Context, cfg *config.Config, serverParams *core.ServerParams, mylog logger.Logger) *Server {
	return &Server{
		ctx:          ctx,
		cfg:          cfg,
		serverParams: serverParams,
		mylog:        mylog,
		metrics:      metrics.NewRegistry(),
		mux:          http.NewServeMux(),
	}
}

// Run wires dependencies and routes, then listens until the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	s.Configure()

	handler := handle.CORS(handle.AccessLog(s.mylog, s.metrics)(s.mux))

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.serverParams.Port),
		Handler: handler,
	}
	s.mu.Unlock()

	mylog.WithGroup("details").With("port", s.serverParams.Port).Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure builds the gateway clients, repositories, services and handlers,
// and registers all routes. External clients are constructed once here and
// injected everywhere they are needed.
func (s *Server) Configure() {
	storeClient := store.NewClient(s.cfg.Store, s.mylog)
	billingClient := billing.NewClient(s.cfg.Billing, s.mylog)
	verifier := billing.NewVerifier(s.cfg.Billing.WebhookSecret)

	orderRepo := store.NewOrderRepo(storeClient)
	employeeRepo := store.NewEmployeeRepo(storeClient)
	periodRepo := store.NewPayPeriodRepo(storeClient)

	trackingService := services.NewTrackingService(orderRepo, s.metrics, s.mylog)
	checkinService := services.NewCheckinService(orderRepo, billingClient, s.metrics, s.mylog)
	completionService := services.NewCompletionService(orderRepo, s.metrics, s.mylog)
	orderService := services.NewOrderService(orderRepo, s.mylog)
	employeeService := services.NewEmployeeService(employeeRepo, orderRepo, periodRepo, s.mylog)
	webhookService := services.NewWebhookService(orderRepo, s.metrics, s.mylog)

	orderHandler := handle.NewOrderHandler(trackingService, checkinService, completionService, orderService, s.mylog)
	employeeHandler := handle.NewEmployeeHandler(employeeService, s.mylog)
	webhookHandler := handle.NewWebhookHandler(verifier, webhookService, s.metrics, s.mylog)

	s.mux.Handle("GET /health", handle.Health())
	s.mux.Handle("GET /metrics", s.metrics.Handler())

	s.mux.Handle("GET /employees", employeeHandler.List())
	s.mux.Handle("GET /employees/{id}/work", employeeHandler.WorkQueue())
	s.mux.Handle("GET /employees/{id}/pay", employeeHandler.PaySummary())

	s.mux.Handle("GET /orders/tracking/{code}", orderHandler.Track())
	s.mux.Handle("POST /orders/{id}/checkin", orderHandler.CheckIn())
	s.mux.Handle("PATCH /orders/{id}/notes", orderHandler.UpdateNotes())
	s.mux.Handle("POST /orders/{id}/complete", orderHandler.Complete())

	s.mux.Handle("POST /webhooks/billing", webhookHandler.Billing())
}
