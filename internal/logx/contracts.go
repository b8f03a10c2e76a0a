package logx

import "time"

// Logger is the structured logger every component receives.
// Implementations: zap (default), slog, Nop.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one key/value pair. Adapters map known value types to typed encoders.
type Field struct {
	Key   string
	Value any
}

func Any(key string, value any) Field                { return Field{Key: key, Value: value} }
func String(key, value string) Field                 { return Field{Key: key, Value: value} }
func Int(key string, value int) Field                { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field            { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field              { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field        { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err puts err under "err".
func Err(err error) Field { return Field{Key: "err", Value: err} }

// Ключи, которые встречаются почти в каждой записи dispatch.

func OrderID(id string) Field      { return String("order_id", id) }
func AssignmentID(id string) Field { return String("assignment_id", id) }
func CourierID(id int64) Field     { return Int64("courier_id", id) }
func SellerID(id int64) Field      { return Int64("seller_id", id) }
