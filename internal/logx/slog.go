package logx

import (
	"context"
	"log/slog"
	"time"
)

// SlogAdapter adapts *slog.Logger to the logx.Logger interface.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a Logger backed by l.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }
func (s *SlogAdapter) Info(msg string, fields ...Field)  { s.log(slog.LevelInfo, msg, fields) }
func (s *SlogAdapter) Warn(msg string, fields ...Field)  { s.log(slog.LevelWarn, msg, fields) }
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

func (s *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	s.l.LogAttrs(context.Background(), level, msg, toSlogAttrs(fields)...)
}

// With returns a child logger carrying the fields.
func (s *SlogAdapter) With(fields ...Field) Logger {
	attrs := toSlogAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &SlogAdapter{l: s.l.With(args...)}
}

// Sync is a no-op, slog handlers write through.
func (s *SlogAdapter) Sync() error { return nil }

func toSlogAttrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, slog.String(f.Key, v))
		case int:
			out = append(out, slog.Int(f.Key, v))
		case int64:
			out = append(out, slog.Int64(f.Key, v))
		case bool:
			out = append(out, slog.Bool(f.Key, v))
		case float64:
			out = append(out, slog.Float64(f.Key, v))
		case time.Duration:
			out = append(out, slog.Duration(f.Key, v))
		case time.Time:
			out = append(out, slog.Time(f.Key, v))
		case error:
			// json handler печатает error как {}
			out = append(out, slog.String(f.Key, v.Error()))
		default:
			out = append(out, slog.Any(f.Key, v))
		}
	}
	return out
}

type nopLogger struct{}

// Nop returns a Logger that drops everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) With(...Field) Logger   { return nopLogger{} }
func (nopLogger) Sync() error            { return nil }
