package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

// usbProductMarker flags order items that carry a removable-storage add-on.
const usbProductMarker = "usb"

type TrackingService struct {
	orderRepo core.IOrderRepo
	metrics   *metrics.Registry
	mylog     logger.Logger
}

func NewTrackingService(orderRepo core.IOrderRepo, reg *metrics.Registry, mylog logger.Logger) *TrackingService {
	return &TrackingService{
		orderRepo: orderRepo,
		metrics:   reg,
		mylog:     mylog,
	}
}

// Resolve finds the one order a scanned code belongs to. Codes of up to
// SuffixMatchMaxLen characters are the last digits of a label and match any
// tracking field by suffix; longer codes must match a field exactly. Multiple
// matches are an error carrying every candidate: short codes are ambiguous by
// design and guessing would check the package into the wrong order.
func (ts *TrackingService) Resolve(ctx context.Context, code string) (models.Order, error) {
	mylog := ts.mylog.Action("resolve_tracking").With("code", code)
	ts.metrics.TrackingLookups.Inc()

	code = strings.TrimSpace(code)
	if code == "" {
		return models.Order{}, fmt.Errorf("%w: empty tracking code", core.ErrInvalidInput)
	}

	exact := len(code) > core.SuffixMatchMaxLen
	matches, err := ts.orderRepo.FindByTracking(ctx, code, exact, core.MaxTrackingCandidates)
	if err != nil {
		mylog.Error("Tracking lookup failed", err)
		return models.Order{}, fmt.Errorf("cannot search orders: %w", err)
	}

	switch len(matches) {
	case 0:
		mylog.Warn("No order for tracking code")
		return models.Order{}, core.ErrOrderNotFound

	case 1:
		order := matches[0]
		usb, err := ts.usbCount(ctx, order)
		if err != nil {
			mylog.Error("Failed to load order items", err, "order_id", order.ID)
			return models.Order{}, fmt.Errorf("cannot load order items: %w", err)
		}
		order.USBCount = usb
		mylog.Info("Tracking code resolved", "order_number", order.OrderNumber)
		return order, nil

	default:
		ts.metrics.TrackingAmbiguous.Inc()
		candidates := make([]models.TrackingMatch, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, models.TrackingMatch{
				OrderNumber:  m.OrderNumber,
				CustomerName: m.CustomerName,
			})
		}
		mylog.Warn("Ambiguous tracking code", "matches", len(candidates))
		return models.Order{}, &core.AmbiguousTrackingError{Code: code, Matches: candidates}
	}
}

// usbCount sums the quantities of linked order items whose product name
// mentions a USB add-on.
func (ts *TrackingService) usbCount(ctx context.Context, order models.Order) (int, error) {
	if len(order.OrderItemIDs) == 0 {
		return 0, nil
	}
	items, err := ts.orderRepo.ListOrderItems(ctx, order.OrderItemIDs)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ProductName), usbProductMarker) {
			total += item.Quantity
		}
	}
	return total, nil
}
