package services

import (
	"context"
	"fmt"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

type OrderService struct {
	orderRepo core.IOrderRepo
	mylog     logger.Logger
}

func NewOrderService(orderRepo core.IOrderRepo, mylog logger.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mylog:     mylog,
	}
}

// UpdateNotes replaces the free-text notes on an order. An empty string
// clears them.
func (os *OrderService) UpdateNotes(ctx context.Context, orderID, notes string) (models.Order, error) {
	mylog := os.mylog.Action("update_notes").With("order_id", orderID)

	order, err := os.orderRepo.UpdateNotes(ctx, orderID, notes)
	if err != nil {
		mylog.Error("Failed to update notes", err)
		return models.Order{}, fmt.Errorf("cannot update notes: %w", err)
	}

	mylog.Info("Notes updated", "order_number", order.OrderNumber)
	return order, nil
}
