package dispatchtx

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
)

// Repository is the set of operations available inside one dispatch transaction.
// Lookups return nil, nil when the row does not exist.
// Conditional writes report whether a row matched their guard.
type Repository interface {
	PickupAddress(ctx context.Context, sellerID int64) (*domain.Address, error)
	LockOrder(ctx context.Context, orderID string) (*domain.Order, error)
	TransitionOrder(ctx context.Context, orderID string, to domain.OrderStatus, from ...domain.OrderStatus) (sellerID int64, ok bool, err error)
	MarkOrderPaid(ctx context.Context, orderID string) error

	AssignmentForOrder(ctx context.Context, orderID string) (*domain.Assignment, error)
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	GetAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	LockAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	ClaimAssignment(ctx context.Context, id uuid.UUID, courierID int64, at time.Time) (orderID string, ok bool, err error)
	AdvanceAssignment(ctx context.Context, id uuid.UUID, from, to domain.AssignmentStatus, at time.Time) (bool, error)

	EligibleCouriers(ctx context.Context) ([]domain.LocatedCourier, error)
	OccupyCourier(ctx context.Context, courierID int64) (bool, error)
	ReleaseCourier(ctx context.Context, courierID int64) error

	InsertCandidates(ctx context.Context, assignmentID uuid.UUID, candidates []domain.Candidate) error
	CandidateStatus(ctx context.Context, assignmentID uuid.UUID, courierID int64) (domain.CandidateStatus, bool, error)
	AcceptCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) error
	ExpireSiblings(ctx context.Context, assignmentID uuid.UUID, at time.Time) ([]int64, error)
	DeclineCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
