package handlers

import (
	"net/http"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

type courierDTO struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Online            bool       `json:"online"`
	Active            bool       `json:"active"`
	Status            string     `json:"status"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	LocationUpdatedAt *time.Time `json:"locationUpdatedAt,omitempty"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type onlineRequest struct {
	Online *bool `json:"online"`
}

// CourierHandler serves the courier self-service endpoints.
type CourierHandler struct {
	uc     courierUsecase
	logger logx.Logger
}

// NewCourierHandler wires a courier usecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{uc: uc, logger: logger}
}

// Me handles GET /couriers/me.
func (h *CourierHandler) Me(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	c, err := h.uc.Get(r.Context(), courierID)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
}

// Location handles POST /couriers/location.
func (h *CourierHandler) Location(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput, "latitude and longitude are required")
		return
	}

	if err := h.uc.UpdateLocation(r.Context(), courierID, domain.Point{Lat: *req.Latitude, Lng: *req.Longitude}); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Online handles POST /couriers/online.
func (h *CourierHandler) Online(w http.ResponseWriter, r *http.Request) {
	courierID, ok := requireCourier(h.logger, w, r)
	if !ok {
		return
	}
	var req onlineRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Online == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput, "online is required")
		return
	}

	if err := h.uc.SetOnline(r.Context(), courierID, *req.Online); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]bool{"online": *req.Online})
}

func courierToResponse(c *domain.Courier) courierDTO {
	out := courierDTO{
		ID:                c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		Online:            c.Online,
		Active:            c.Active,
		Status:            string(c.Status),
		LocationUpdatedAt: c.LocationUpdatedAt,
	}
	if c.Location != nil {
		lat, lng := c.Location.Lat, c.Location.Lng
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}
