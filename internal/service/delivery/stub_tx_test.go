package delivery_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

// runWith makes the mocked runner execute the callback against tx exactly once.
func runWith(runner *MocktxRunner, tx dispatchtx.Repository) {
	runner.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(dispatchtx.Repository) error) error {
			return fn(tx)
		})
}

type stubTx struct {
	mu    sync.Mutex
	calls []string

	pickupFn      func(context.Context, int64) (*domain.Address, error)
	lockOrderFn   func(context.Context, string) (*domain.Order, error)
	transitionFn  func(context.Context, string, domain.OrderStatus, ...domain.OrderStatus) (int64, bool, error)
	paidFn        func(context.Context, string) error
	forOrderFn    func(context.Context, string) (*domain.Assignment, error)
	insertFn      func(context.Context, *domain.Assignment) error
	getFn         func(context.Context, uuid.UUID) (*domain.Assignment, error)
	lockFn        func(context.Context, uuid.UUID) (*domain.Assignment, error)
	claimFn       func(context.Context, uuid.UUID, int64, time.Time) (string, bool, error)
	advanceFn     func(context.Context, uuid.UUID, domain.AssignmentStatus, domain.AssignmentStatus, time.Time) (bool, error)
	eligibleFn    func(context.Context) ([]domain.LocatedCourier, error)
	occupyFn      func(context.Context, int64) (bool, error)
	releaseFn     func(context.Context, int64) error
	candidatesFn  func(context.Context, uuid.UUID, []domain.Candidate) error
	candStatusFn  func(context.Context, uuid.UUID, int64) (domain.CandidateStatus, bool, error)
	acceptCandFn  func(context.Context, uuid.UUID, int64, time.Time) error
	expireFn      func(context.Context, uuid.UUID, time.Time) ([]int64, error)
	declineCandFn func(context.Context, uuid.UUID, int64, time.Time) (bool, error)
}

var _ dispatchtx.Repository = (*stubTx)(nil)

func (s *stubTx) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubTx) called(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (s *stubTx) PickupAddress(ctx context.Context, sellerID int64) (*domain.Address, error) {
	s.record("PickupAddress")
	if s.pickupFn == nil {
		return nil, nil
	}
	return s.pickupFn(ctx, sellerID)
}

func (s *stubTx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	s.record("LockOrder")
	if s.lockOrderFn == nil {
		return nil, nil
	}
	return s.lockOrderFn(ctx, orderID)
}

func (s *stubTx) TransitionOrder(ctx context.Context, orderID string, to domain.OrderStatus, from ...domain.OrderStatus) (int64, bool, error) {
	s.record("TransitionOrder")
	if s.transitionFn == nil {
		return 0, true, nil
	}
	return s.transitionFn(ctx, orderID, to, from...)
}

func (s *stubTx) MarkOrderPaid(ctx context.Context, orderID string) error {
	s.record("MarkOrderPaid")
	if s.paidFn == nil {
		return nil
	}
	return s.paidFn(ctx, orderID)
}

func (s *stubTx) AssignmentForOrder(ctx context.Context, orderID string) (*domain.Assignment, error) {
	s.record("AssignmentForOrder")
	if s.forOrderFn == nil {
		return nil, nil
	}
	return s.forOrderFn(ctx, orderID)
}

func (s *stubTx) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	s.record("InsertAssignment")
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, a)
}

func (s *stubTx) GetAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	s.record("GetAssignment")
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubTx) LockAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	s.record("LockAssignment")
	if s.lockFn == nil {
		return nil, nil
	}
	return s.lockFn(ctx, id)
}

func (s *stubTx) ClaimAssignment(ctx context.Context, id uuid.UUID, courierID int64, at time.Time) (string, bool, error) {
	s.record("ClaimAssignment")
	if s.claimFn == nil {
		return "", false, nil
	}
	return s.claimFn(ctx, id, courierID, at)
}

func (s *stubTx) AdvanceAssignment(ctx context.Context, id uuid.UUID, from, to domain.AssignmentStatus, at time.Time) (bool, error) {
	s.record("AdvanceAssignment")
	if s.advanceFn == nil {
		return true, nil
	}
	return s.advanceFn(ctx, id, from, to, at)
}

func (s *stubTx) EligibleCouriers(ctx context.Context) ([]domain.LocatedCourier, error) {
	s.record("EligibleCouriers")
	if s.eligibleFn == nil {
		return nil, nil
	}
	return s.eligibleFn(ctx)
}

func (s *stubTx) OccupyCourier(ctx context.Context, courierID int64) (bool, error) {
	s.record("OccupyCourier")
	if s.occupyFn == nil {
		return true, nil
	}
	return s.occupyFn(ctx, courierID)
}

func (s *stubTx) ReleaseCourier(ctx context.Context, courierID int64) error {
	s.record("ReleaseCourier")
	if s.releaseFn == nil {
		return nil
	}
	return s.releaseFn(ctx, courierID)
}

func (s *stubTx) InsertCandidates(ctx context.Context, assignmentID uuid.UUID, c []domain.Candidate) error {
	s.record("InsertCandidates")
	if s.candidatesFn == nil {
		return nil
	}
	return s.candidatesFn(ctx, assignmentID, c)
}

func (s *stubTx) CandidateStatus(ctx context.Context, assignmentID uuid.UUID, courierID int64) (domain.CandidateStatus, bool, error) {
	s.record("CandidateStatus")
	if s.candStatusFn == nil {
		return "", false, nil
	}
	return s.candStatusFn(ctx, assignmentID, courierID)
}

func (s *stubTx) AcceptCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) error {
	s.record("AcceptCandidate")
	if s.acceptCandFn == nil {
		return nil
	}
	return s.acceptCandFn(ctx, assignmentID, courierID, at)
}

func (s *stubTx) ExpireSiblings(ctx context.Context, assignmentID uuid.UUID, at time.Time) ([]int64, error) {
	s.record("ExpireSiblings")
	if s.expireFn == nil {
		return nil, nil
	}
	return s.expireFn(ctx, assignmentID, at)
}

func (s *stubTx) DeclineCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) (bool, error) {
	s.record("DeclineCandidate")
	if s.declineCandFn == nil {
		return false, nil
	}
	return s.declineCandFn(ctx, assignmentID, courierID, at)
}

// writes lists every mutating method of dispatchtx.Repository.
var writes = []string{
	"TransitionOrder", "MarkOrderPaid", "InsertAssignment", "ClaimAssignment", "AdvanceAssignment",
	"OccupyCourier", "ReleaseCourier", "InsertCandidates", "AcceptCandidate", "ExpireSiblings", "DeclineCandidate",
}

func (s *stubTx) wrote(except ...string) []string {
	skip := make(map[string]bool, len(except))
	for _, e := range except {
		skip[e] = true
	}
	var out []string
	for _, w := range writes {
		if !skip[w] && s.called(w) {
			out = append(out, w)
		}
	}
	return out
}
