package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"

	constraintAssignmentOrder  = "delivery_assignments_order_id_key"
	constraintActiveCourier    = "delivery_assignments_active_courier_key"
	constraintAcceptedOnceOnly = "delivery_candidates_accepted_key"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == codeUniqueViolation
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsRetryable reports whether the whole transaction can be safely rerun.
func IsRetryable(err error) bool {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return false
	}
	return pgerr.Code == codeSerializationFailure || pgerr.Code == codeDeadlockDetected
}

func violates(err error, constraint string) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == codeUniqueViolation && pgerr.ConstraintName == constraint
}
