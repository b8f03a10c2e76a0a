package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation (HTTP 400).
var ErrInvalid = errors.New("invalid input")

// ErrForbidden indicates the caller does not own the resource (HTTP 403).
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist (HTTP 404).
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrUnauthenticated indicates a missing caller identity (HTTP 401).
var ErrUnauthenticated = errors.New("unauthenticated")

// Code is a stable machine-readable error identifier returned to clients.
type Code string

// List of error codes
const (
	CodeInvalidInput            Code = "INVALID_INPUT"
	CodeUnauthenticated         Code = "UNAUTHENTICATED"
	CodeOrderNotFound           Code = "ORDER_NOT_FOUND"
	CodeOrderNotReady           Code = "ORDER_NOT_READY"
	CodeNullSellerPickupAddress Code = "NULL_SELLER_PICKUP_ADDRESS"
	CodeAssignmentExists        Code = "ASSIGNMENT_EXISTS"
	CodeAssignmentNotFound      Code = "ASSIGNMENT_NOT_FOUND"
	CodeAssignmentNotAvailable  Code = "ASSIGNMENT_NOT_AVAILABLE"
	CodeAssignmentNotOwned      Code = "ASSIGNMENT_NOT_OWNED"
	CodeCourierNotFound         Code = "COURIER_NOT_FOUND"
	CodeCourierOccupied         Code = "COURIER_OCCUPIED"
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
)

// Error is a coded domain error. errors.Is matches it against its Kind sentinel.
type Error struct {
	Kind error
	Code Code
	Msg  string
}

// New creates a coded domain error of the given kind.
func New(kind error, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Msg
}

// Unwrap exposes the kind sentinel.
func (e *Error) Unwrap() error { return e.Kind }

// CodeOf extracts the error code, or "" when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MessageOf returns the client-facing message of a coded error, or fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
