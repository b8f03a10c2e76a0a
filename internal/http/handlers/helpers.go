package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/http/middleware/identity"
	"service-dispatch/internal/logx"
)

const bodyLimit = 1 << 20

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, code apperr.Code, msg string) {
	logger.Debug("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("code", string(code)),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg, Code: string(code)})
}

// writeAppError maps a service error to its HTTP status. Uncoded errors are 500 and logged.
func writeAppError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("internal error",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		writeJSON(logger, w, r, status, ErrorResponse{Error: "internal error"})
		return
	}
	writeError(logger, w, r, status, apperr.CodeOf(err), apperr.MessageOf(err, err.Error()))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput, "invalid json: trailing data")
		return false
	}
	return true
}

func requireCourier(logger logx.Logger, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identity.CourierID(r.Context())
	if !ok {
		writeError(logger, w, r, http.StatusUnauthorized, apperr.CodeUnauthenticated, "courier identity required")
	}
	return id, ok
}

func requireSeller(logger logx.Logger, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identity.SellerID(r.Context())
	if !ok {
		writeError(logger, w, r, http.StatusUnauthorized, apperr.CodeUnauthenticated, "seller identity required")
	}
	return id, ok
}

func parseAssignmentID(logger logx.Logger, w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(logger, w, r, http.StatusBadRequest, apperr.CodeInvalidInput, "assignmentId must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}
