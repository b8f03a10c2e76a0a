package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/http/middleware/identity"
	"service-dispatch/internal/logx"
)

const defaultHeartbeat = 25 * time.Second

// EventsHandler streams push events to the caller as server-sent events.
type EventsHandler struct {
	hub       eventSubscriber
	logger    logx.Logger
	heartbeat time.Duration
}

// NewEventsHandler creates a new EventsHandler. heartbeat <= 0 uses the default.
func NewEventsHandler(logger logx.Logger, hub eventSubscriber, heartbeat time.Duration) *EventsHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &EventsHandler{hub: hub, logger: logger, heartbeat: heartbeat}
}

// Stream handles GET /events. A courier identity wins over a seller identity.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var to domain.Recipient
	if id, ok := identity.CourierID(r.Context()); ok {
		to = domain.CourierRecipient(id)
	} else if id, ok := identity.SellerID(r.Context()); ok {
		to = domain.SellerRecipient(id)
	} else {
		writeError(h.logger, w, r, http.StatusUnauthorized, apperr.CodeUnauthenticated, "identity required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(h.logger, w, r, http.StatusInternalServerError, ErrorResponse{Error: "streaming unsupported"})
		return
	}

	sub := h.hub.Subscribe(to)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	h.logger.Debug("events stream opened", logx.String("role", string(to.Role)), logx.Int64("recipient_id", to.ID))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			b, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("events marshal", logx.Err(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, b); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
