package kafka

import (
	"errors"

	"service-dispatch/internal/apperr"
)

// PermanentError marks a handler failure that must not be retried.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a PermanentError. nil stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return PermanentError{Err: err}
}

// isPermanent: явные Permanent и кодированные отказы домена (заказ не найден, не готов и т.п.)
// повтор не исправит, ретраим только инфраструктурные ошибки
func isPermanent(err error) bool {
	var perm PermanentError
	return errors.As(err, &perm) || apperr.CodeOf(err) != ""
}
