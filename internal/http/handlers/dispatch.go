package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Values accepted by POST /delivery-assignments/status besides assignment statuses.
const (
	actionAccept  = "accept"
	actionDecline = "decline"
)

// DispatchHandler serves the delivery-assignment endpoints.
type DispatchHandler struct {
	creator    assignmentCreator
	resolver   assignmentResolver
	progressor assignmentProgressor
	offers     offerLister
	logger     logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, c assignmentCreator, r assignmentResolver, p assignmentProgressor, o offerLister) *DispatchHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DispatchHandler{creator: c, resolver: r, progressor: p, offers: o, logger: logger}
}

// Create handles POST /delivery-assignments (seller).
func (h *DispatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := requireSeller(h.logger, w, r)
	if !ok {
		return
	}
	var req createAssignmentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.creator.Create(r.Context(), sellerID, req.OrderID)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createResultToResponse(res))
}

// Accept handles POST /delivery-assignments/accept (courier).
func (h *DispatchHandler) Accept(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	var req acceptRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	id, ok := parseAssignmentID(h.logger, w, r, req.AssignmentID)
	if !ok {
		return
	}
	h.accept(w, r, courierID, id)
}

// Status handles POST /delivery-assignments/status (courier): accept, decline or progress.
func (h *DispatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	id, ok := parseAssignmentID(h.logger, w, r, req.AssignmentID)
	if !ok {
		return
	}

	switch status := strings.ToLower(strings.TrimSpace(req.Status)); status {
	case actionAccept, string(domain.AssignmentRiderAssigned):
		h.accept(w, r, courierID, id)
	case actionDecline:
		res, err := h.resolver.Decline(r.Context(), courierID, id)
		if err != nil {
			writeAppError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, declineResponse{
			AssignmentID: res.AssignmentID.String(),
			Status:       string(domain.CandidateDeclined),
		})
	case string(domain.AssignmentPickedUp), string(domain.AssignmentDelivered), string(domain.AssignmentCancelled):
		res, err := h.progressor.Advance(r.Context(), courierID, id, domain.AssignmentStatus(status))
		if err != nil {
			writeAppError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, progressResultToResponse(res))
	default:
		writeError(h.logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput,
			"status must be one of accept, decline, rider_assigned, picked_up, delivered, cancelled")
	}
}

func (h *DispatchHandler) accept(w http.ResponseWriter, r *http.Request, courierID int64, id uuid.UUID) {
	res, err := h.resolver.Accept(r.Context(), courierID, id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, acceptResultToResponse(res))
}

// Available handles GET /delivery-assignments/available (courier).
func (h *DispatchHandler) Available(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.offers.Available(r.Context(), courierID)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, availableToResponse(list))
}
