package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Backends accepted by New.
const (
	BackendZap  = "zap"
	BackendSlog = "slog"
)

// New builds a JSON logger writing to stdout.
func New(backend, level string) (Logger, error) {
	return newTo(os.Stdout, backend, level)
}

func newTo(w io.Writer, backend, level string) (Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendZap:
		lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
		return NewZapAdapter(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
	case "", BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
