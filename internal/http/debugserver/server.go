package debugserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-dispatch/internal/logx"
)

// Config stores debug listener settings.
type Config struct {
	Addr       string
	User       string
	Pass       string
	AllowCIDRs []string
}

// Handler mounts pprof under /debug. Loopback and allowlisted networks pass without credentials.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(cfg))
	r.Mount("/debug", middleware.Profiler())
	return r
}

// New returns the debug listener, or nil when Addr is empty.
func New(cfg Config) *http.Server {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start serves in the background. A nil server is a no-op.
func Start(srv *http.Server, logger logx.Logger) {
	if srv == nil {
		return
	}
	go func() {
		logger.Info("debug listener started", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("debug listener failed", logx.Err(err))
		}
	}()
}

func guard(cfg Config) func(http.Handler) http.Handler {
	nets := make([]*net.IPNet, 0, len(cfg.AllowCIDRs))
	for _, c := range cfg.AllowCIDRs {
		if _, n, err := net.ParseCIDR(strings.TrimSpace(c)); err == nil {
			nets = append(nets, n)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trusted(r.RemoteAddr, nets) {
				next.ServeHTTP(w, r)
				return
			}
			u, p, ok := r.BasicAuth()
			if cfg.User == "" || cfg.Pass == "" || !ok || !secureEq(u, cfg.User) || !secureEq(p, cfg.Pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secureEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func trusted(remoteAddr string, nets []*net.IPNet) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
