package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/dto"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/metrics"
)

type CompletionService struct {
	orderRepo core.IOrderRepo
	metrics   *metrics.Registry
	mylog     logger.Logger
}

func NewCompletionService(orderRepo core.IOrderRepo, reg *metrics.Registry, mylog logger.Logger) *CompletionService {
	return &CompletionService{
		orderRepo: orderRepo,
		metrics:   reg,
		mylog:     mylog,
	}
}

// ComputePay is the single authority for digitization pay: flat base plus a
// per-item rate. The computed values are persisted with the completion, so
// the pay view reads back exactly what was reported here.
func ComputePay(itemsDigitized int) models.Pay {
	perItem := core.PerItemPay.Mul(decimal.NewFromInt(int64(itemsDigitized)))
	return models.Pay{
		Base:    core.BasePay,
		PerItem: perItem,
		Total:   core.BasePay.Add(perItem),
	}
}

// Complete records the end of digitization for an order: item count, pay,
// completion date (date-only) and the terminal status.
func (cs *CompletionService) Complete(ctx context.Context, orderID string, req dto.CompleteRequest) (models.Order, models.Pay, error) {
	mylog := cs.mylog.Action("complete").With("order_id", orderID)

	if req.ItemsDigitized < 0 {
		return models.Order{}, models.Pay{}, fmt.Errorf("%w: itemsDigitized must not be negative", core.ErrInvalidInput)
	}

	order, err := cs.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		mylog.Error("Failed to fetch order", err)
		return models.Order{}, models.Pay{}, err
	}

	pay := ComputePay(req.ItemsDigitized)

	updated, err := cs.orderRepo.ApplyCompletion(ctx, orderID, core.CompletionUpdate{
		ItemsDigitized: req.ItemsDigitized,
		CompletedDate:  time.Now().UTC(),
		Status:         core.StatusCompleted,
		EmployeeID:     req.EmployeeID,
		Pay:            pay,
	})
	if err != nil {
		mylog.Error("Failed to persist completion", err)
		return models.Order{}, models.Pay{}, fmt.Errorf("cannot save completion: %w", err)
	}

	cs.metrics.Completions.Inc()
	mylog.Info("Completion recorded",
		"order_number", order.OrderNumber,
		"items_digitized", req.ItemsDigitized,
		"pay_total", pay.Total.StringFixed(2),
	)
	return updated, pay, nil
}
