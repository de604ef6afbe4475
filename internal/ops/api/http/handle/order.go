package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/services"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/dto"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

type OrderHandler struct {
	trackingService   *services.TrackingService
	checkinService    *services.CheckinService
	completionService *services.CompletionService
	orderService      *services.OrderService
	mylog             logger.Logger
}

func NewOrderHandler(
	trackingService *services.TrackingService,
	checkinService *services.CheckinService,
	completionService *services.CompletionService,
	orderService *services.OrderService,
	mylog logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		trackingService:   trackingService,
		checkinService:    checkinService,
		completionService: completionService,
		orderService:      orderService,
		mylog:             mylog,
	}
}

// Track resolves a scanned tracking code to a single order.
func (oh *OrderHandler) Track() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.PathValue("code")

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.trackingService.Resolve(ctx, code)
		if err != nil {
			if errors.Is(err, core.ErrOrderNotFound) {
				jsonErrorDetails(w, http.StatusNotFound, core.ErrOrderNotFound, map[string]string{"code": code})
				return
			}
			writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, orderDetail(order))
	}
}

// CheckIn records package intake for an order.
func (oh *OrderHandler) CheckIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("id")

		var req dto.CheckInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Action("parse_failed").Error("Failed to parse check-in request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, invoice, err := oh.checkinService.CheckIn(ctx, orderID, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := dto.CheckInResponse{
			Success: true,
			Order:   orderDetail(order),
		}
		if invoice != nil {
			resp.Invoice = &dto.InvoiceSummary{
				ID:        invoice.ID,
				HostedURL: invoice.HostedURL,
				Amount:    invoice.AmountDue.InexactFloat64(),
			}
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

// UpdateNotes replaces the free-text notes on an order.
func (oh *OrderHandler) UpdateNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("id")

		var req dto.NotesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Action("parse_failed").Error("Failed to parse notes request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.orderService.UpdateNotes(ctx, orderID, req.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.NotesResponse{Success: true, Notes: order.Notes})
	}
}

// Complete records the end of digitization for an order.
func (oh *OrderHandler) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("id")

		var req dto.CompleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Action("parse_failed").Error("Failed to parse completion request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, pay, err := oh.completionService.Complete(ctx, orderID, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.CompleteResponse{
			Success: true,
			Order:   orderDetail(order),
			Pay: dto.PaySummary{
				Base:    pay.Base.InexactFloat64(),
				PerItem: pay.PerItem.InexactFloat64(),
				Total:   pay.Total.InexactFloat64(),
			},
		})
	}
}

func orderDetail(order models.Order) dto.OrderDetail {
	detail := dto.OrderDetail{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		ExpectedItems:   order.ExpectedItems,
		ItemsReceived:   order.ItemsReceived,
		ItemsDigitized:  order.ItemsDigitized,
		ExtraItems:      order.ExtraItems,
		ExtraCharge:     order.ExtraCharge.InexactFloat64(),
		Status:          order.Status,
		InvoiceID:       order.InvoiceID,
		InvoicePaid:     order.InvoicePaid,
		TrackingNumbers: order.TrackingNumbers,
		Notes:           order.Notes,
		USBCount:        order.USBCount,
	}
	if order.AssignedTo.Name != "" {
		detail.AssignedTo = order.AssignedTo.Name
	} else {
		detail.AssignedTo = order.AssignedTo.ID
	}
	if !order.CreatedAt.IsZero() {
		detail.CreatedAt = order.CreatedAt.UTC().Format(time.RFC3339)
	}
	return detail
}
