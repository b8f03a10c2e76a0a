package delivery_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/delivery"
)

func newProgression(runner *MocktxRunner, n *Mocknotifier) *delivery.Progression {
	return delivery.NewProgression(runner, n, delivery.Options{OperationTimeout: time.Second}, logx.Nop())
}

func ownedAssignment(id uuid.UUID, courierID int64, st domain.AssignmentStatus) func(context.Context, uuid.UUID) (*domain.Assignment, error) {
	return func(context.Context, uuid.UUID) (*domain.Assignment, error) {
		return &domain.Assignment{ID: id, OrderID: "ord-1", CourierID: &courierID, Status: st}, nil
	}
}

func TestProgression_PickedUpOnOpenAssignmentIsRejected(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	id := uuid.New()

	tx := &stubTx{
		lockFn: func(context.Context, uuid.UUID) (*domain.Assignment, error) {
			return &domain.Assignment{ID: id, OrderID: "ord-1", Status: domain.AssignmentLookingForRider}, nil
		},
	}
	runWith(runner, tx)

	_, err := newProgression(runner, NewMocknotifier(ctrl)).
		Advance(context.Background(), 21, id, domain.AssignmentPickedUp)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeAssignmentNotOwned, apperr.CodeOf(err))
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Empty(t, tx.wrote())
}

func TestProgression_PickedUp(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	n := NewMocknotifier(ctrl)
	id := uuid.New()

	tx := &stubTx{
		lockFn: ownedAssignment(id, 21, domain.AssignmentRiderAssigned),
		advanceFn: func(_ context.Context, _ uuid.UUID, from, to domain.AssignmentStatus, _ time.Time) (bool, error) {
			require.Equal(t, domain.AssignmentRiderAssigned, from)
			require.Equal(t, domain.AssignmentPickedUp, to)
			return true, nil
		},
		transitionFn: func(_ context.Context, orderID string, to domain.OrderStatus, from ...domain.OrderStatus) (int64, bool, error) {
			require.Equal(t, "ord-1", orderID)
			require.Equal(t, domain.OrderOutForDelivery, to)
			require.Equal(t, []domain.OrderStatus{domain.OrderRiderAssigned}, from)
			return 7, true, nil
		},
	}
	runWith(runner, tx)
	n.EXPECT().Notify(gomock.Any(), domain.SellerRecipient(7), gomock.Any())

	res, err := newProgression(runner, n).Advance(context.Background(), 21, id, domain.AssignmentPickedUp)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentPickedUp, res.Status)
	assert.Equal(t, domain.OrderOutForDelivery, res.OrderStatus)
	assert.False(t, tx.called("ReleaseCourier"))
	assert.False(t, tx.called("MarkOrderPaid"))
}

func TestProgression_DeliveredSettlesAndReleases(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	n := NewMocknotifier(ctrl)
	id := uuid.New()

	var released int64
	tx := &stubTx{
		lockFn: ownedAssignment(id, 21, domain.AssignmentPickedUp),
		transitionFn: func(_ context.Context, _ string, to domain.OrderStatus, from ...domain.OrderStatus) (int64, bool, error) {
			require.Equal(t, domain.OrderDelivered, to)
			require.Equal(t, []domain.OrderStatus{domain.OrderOutForDelivery}, from)
			return 7, true, nil
		},
		releaseFn: func(_ context.Context, courierID int64) error {
			released = courierID
			return nil
		},
	}
	runWith(runner, tx)
	n.EXPECT().Notify(gomock.Any(), domain.SellerRecipient(7), gomock.Any())

	_, err := newProgression(runner, n).Advance(context.Background(), 21, id, domain.AssignmentDelivered)
	require.NoError(t, err)
	assert.True(t, tx.called("MarkOrderPaid"))
	assert.Equal(t, int64(21), released)
}

func TestProgression_CancelledReleasesCourier(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	n := NewMocknotifier(ctrl)
	id := uuid.New()

	tx := &stubTx{
		lockFn: ownedAssignment(id, 21, domain.AssignmentRiderAssigned),
		transitionFn: func(_ context.Context, _ string, to domain.OrderStatus, from ...domain.OrderStatus) (int64, bool, error) {
			require.Equal(t, domain.OrderCancelled, to)
			require.Contains(t, from, domain.OrderRiderAssigned)
			require.Contains(t, from, domain.OrderOutForDelivery)
			return 7, true, nil
		},
	}
	runWith(runner, tx)
	n.EXPECT().Notify(gomock.Any(), domain.SellerRecipient(7), gomock.Any())

	res, err := newProgression(runner, n).Advance(context.Background(), 21, id, domain.AssignmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, res.OrderStatus)
	assert.True(t, tx.called("ReleaseCourier"))
	assert.False(t, tx.called("MarkOrderPaid"))
}

func TestProgression_TransitionTable(t *testing.T) {
	t.Parallel()

	all := []domain.AssignmentStatus{
		domain.AssignmentLookingForRider, domain.AssignmentRiderAssigned, domain.AssignmentPickedUp,
		domain.AssignmentDelivered, domain.AssignmentCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			from, to := from, to
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				t.Parallel()

				ctrl := newCtrl(t)
				runner := NewMocktxRunner(ctrl)
				n := NewMocknotifier(ctrl)
				id := uuid.New()

				tx := &stubTx{lockFn: ownedAssignment(id, 21, from)}
				runWith(runner, tx)
				n.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

				_, err := newProgression(runner, n).Advance(context.Background(), 21, id, to)

				// looking_for_rider -> rider_assigned goes through Accept, never through Advance.
				if domain.AssignmentMachine.CanTransition(from, to) && to != domain.AssignmentRiderAssigned {
					require.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.Equal(t, apperr.CodeInvalidStatusTransition, apperr.CodeOf(err))
				assert.Empty(t, tx.wrote("AdvanceAssignment"))
			})
		}
	}
}

func TestProgression_NotFoundAndBadTarget(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	runWith(runner, &stubTx{})
	p := newProgression(runner, NewMocknotifier(ctrl))

	_, err := p.Advance(context.Background(), 21, uuid.New(), domain.AssignmentPickedUp)
	require.Equal(t, apperr.CodeAssignmentNotFound, apperr.CodeOf(err))
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = p.Advance(context.Background(), 21, uuid.New(), domain.AssignmentStatus("teleported"))
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestProgression_OrderDivergedRollsBack(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := NewMocktxRunner(ctrl)
	id := uuid.New()

	tx := &stubTx{
		lockFn: ownedAssignment(id, 21, domain.AssignmentRiderAssigned),
		transitionFn: func(context.Context, string, domain.OrderStatus, ...domain.OrderStatus) (int64, bool, error) {
			return 0, false, nil
		},
	}
	runWith(runner, tx)

	_, err := newProgression(runner, NewMocknotifier(ctrl)).
		Advance(context.Background(), 21, id, domain.AssignmentPickedUp)
	require.Equal(t, apperr.CodeInvalidStatusTransition, apperr.CodeOf(err))
}
