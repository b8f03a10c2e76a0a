package identity

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Headers set by the upstream auth gateway.
const (
	HeaderCourierID = "X-Courier-ID"
	HeaderSellerID  = "X-Seller-ID"
)

type ctxKey int

const (
	courierKey ctxKey = iota
	sellerKey
)

// Middleware reads caller identity headers into the request context.
// A present but malformed header is rejected with 401.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		for _, h := range []struct {
			name string
			key  ctxKey
		}{{HeaderCourierID, courierKey}, {HeaderSellerID, sellerKey}} {
			raw := strings.TrimSpace(r.Header.Get(h.name))
			if raw == "" {
				continue
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"malformed ` + h.name + ` header","code":"UNAUTHENTICATED"}` + "\n"))
				return
			}
			ctx = context.WithValue(ctx, h.key, id)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithCourier returns a context carrying the courier id.
func WithCourier(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, courierKey, id)
}

// WithSeller returns a context carrying the seller id.
func WithSeller(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, sellerKey, id)
}

// CourierID returns the authenticated courier id.
func CourierID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(courierKey).(int64)
	return id, ok
}

// SellerID returns the authenticated seller id.
func SellerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(sellerKey).(int64)
	return id, ok
}

// Key identifies the caller for per-client accounting, e.g. "courier:7".
// It returns "" for anonymous requests.
func Key(ctx context.Context) string {
	if id, ok := CourierID(ctx); ok {
		return "courier:" + strconv.FormatInt(id, 10)
	}
	if id, ok := SellerID(ctx); ok {
		return "seller:" + strconv.FormatInt(id, 10)
	}
	return ""
}
