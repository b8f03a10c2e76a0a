package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

type orderStatusResponse struct {
	OrderID             string  `json:"orderId"`
	From                string  `json:"from"`
	Status              string  `json:"status"`
	WithdrawnCandidates []int64 `json:"withdrawnCandidates,omitempty"`
}

// OrderHandler serves the seller-side order status endpoint.
type OrderHandler struct {
	uc     orderStatusUsecase
	logger logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, uc orderStatusUsecase) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{uc: uc, logger: logger}
}

// UpdateStatus handles POST /orders/{orderID}/status (seller).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := requireSeller(h.logger, w, r)
	if !ok {
		return
	}
	var req orderStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	target := domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	res, err := h.uc.UpdateStatus(r.Context(), sellerID, chi.URLParam(r, "orderID"), target)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderStatusResponse{
		OrderID:             res.OrderID,
		From:                string(res.From),
		Status:              string(res.Status),
		WithdrawnCandidates: res.Withdrawn,
	})
}
