package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
	testlog "service-dispatch/internal/testutil"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "x"), http.StatusBadRequest},
		{apperr.New(apperr.ErrUnauthenticated, apperr.CodeUnauthenticated, "x"), http.StatusUnauthorized},
		{apperr.New(apperr.ErrForbidden, apperr.CodeAssignmentNotOwned, "x"), http.StatusForbidden},
		{apperr.New(apperr.ErrNotFound, apperr.CodeOrderNotFound, "x"), http.StatusNotFound},
		{apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "x"), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", apperr.New(apperr.ErrConflict, apperr.CodeAssignmentExists, "x")), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, statusOf(tc.err), tc.err.Error())
	}
}

func TestWriteAppError_HidesInternalDetails(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	rr := httptest.NewRecorder()
	writeAppError(rec.Logger(), rr, httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
	require.Equal(t, "internal error", rec.Entries()[0].Msg)
}

func TestWriteAppError_Coded(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "assignment was already taken by another courier")
	writeAppError(logx.Nop(), rr, httptest.NewRequest(http.MethodGet, "/x", nil), err)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.JSONEq(t, `{"error":"assignment was already taken by another courier","code":"ASSIGNMENT_NOT_AVAILABLE"}`, rr.Body.String())
}

func TestDecodeJSON_Rejects(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{`, `{"orderId":"a","extra":1}`, `{"orderId":"a"}{}`} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
		var dst createAssignmentRequest
		require.False(t, decodeJSON(logx.Nop(), rr, req, &dst), body)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), `"code":"INVALID_INPUT"`)
	}
}
