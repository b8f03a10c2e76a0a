package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo represents the dispatch store: orders, assignments, candidates and courier occupancy.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ dispatchtx.Repository = (*TxRepo)(nil)

const assignmentColumns = `id, order_id, courier_id, status, delivery_fee, pickup_address, delivery_address,
        created_at, assigned_at, picked_up_at, delivered_at, cancelled_at`

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(&a.ID, &a.OrderID, &a.CourierID, &a.Status, &a.DeliveryFee, &a.PickupAddress,
		&a.DeliveryAddress, &a.CreatedAt, &a.AssignedAt, &a.PickedUpAt, &a.DeliveredAt, &a.CancelledAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// PickupAddress - returns the seller's pickup address.
func (r *TxRepo) PickupAddress(ctx context.Context, sellerID int64) (*domain.Address, error) {
	var (
		a        domain.Address
		lat, lng *float64
	)
	err := r.tx.QueryRow(ctx, `
        SELECT address_line, city, province, postal_code, latitude, longitude
        FROM seller_pickup_addresses
        WHERE seller_id = $1
    `, sellerID).Scan(&a.Line, &a.City, &a.Province, &a.PostalCode, &lat, &lng)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pickup address of seller %d: %w", sellerID, err)
	}
	if lat != nil && lng != nil {
		a.Location = &domain.Point{Lat: *lat, Lng: *lng}
	}
	return &a, nil
}

// LockOrder - reads the order and holds its row lock until the end of the transaction.
func (r *TxRepo) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var (
		o        domain.Order
		lat, lng *float64
	)
	err := r.tx.QueryRow(ctx, `
        SELECT id, seller_id, status, payment_status, recipient_name, recipient_phone,
               delivery_address_line, delivery_city, delivery_province, delivery_postal_code,
               delivery_latitude, delivery_longitude, total_amount, created_at
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `, orderID).Scan(&o.ID, &o.SellerID, &o.Status, &o.PaymentStatus, &o.RecipientName, &o.RecipientPhone,
		&o.Address.Line, &o.Address.City, &o.Address.Province, &o.Address.PostalCode,
		&lat, &lng, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock order %q: %w", orderID, err)
	}
	if lat != nil && lng != nil {
		o.Address.Location = &domain.Point{Lat: *lat, Lng: *lng}
	}
	return &o, nil
}

// TransitionOrder - moves the order to status `to` if it is currently in one of `from`,
// and mirrors the new status onto its line items.
func (r *TxRepo) TransitionOrder(ctx context.Context, orderID string, to domain.OrderStatus, from ...domain.OrderStatus) (int64, bool, error) {
	froms := make([]string, 0, len(from))
	for _, s := range from {
		froms = append(froms, string(s))
	}

	var sellerID int64
	err := r.tx.QueryRow(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status = ANY($3)
        RETURNING seller_id
    `, orderID, string(to), froms).Scan(&sellerID)
	if err != nil {
		if IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("transition order %q to %s: %w", orderID, to, err)
	}

	if _, err := r.tx.Exec(ctx, `
        UPDATE order_items SET item_status = $2 WHERE order_id = $1
    `, orderID, string(to)); err != nil {
		return 0, false, fmt.Errorf("mirror item status of order %q: %w", orderID, err)
	}
	return sellerID, true, nil
}

// MarkOrderPaid - marks the order payment as settled.
func (r *TxRepo) MarkOrderPaid(ctx context.Context, orderID string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders SET payment_status = $2, updated_at = now() WHERE id = $1
    `, orderID, string(domain.PaymentPaid))
	if err != nil {
		return fmt.Errorf("mark order %q paid: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not found", orderID)
	}
	return nil
}

// AssignmentForOrder - returns the order's assignment, locked for update.
func (r *TxRepo) AssignmentForOrder(ctx context.Context, orderID string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `
        SELECT `+assignmentColumns+`
        FROM delivery_assignments
        WHERE order_id = $1
        FOR UPDATE
    `, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment of order %q: %w", orderID, err)
	}
	return a, nil
}

// InsertAssignment - inserts a new assignment.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO delivery_assignments (id, order_id, status, delivery_fee, pickup_address, delivery_address, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        RETURNING created_at
    `, a.ID, a.OrderID, string(a.Status), a.DeliveryFee, a.PickupAddress, a.DeliveryAddress, a.CreatedAt).Scan(&a.CreatedAt)
	if err != nil {
		if violates(err, constraintAssignmentOrder) {
			return apperr.New(apperr.ErrConflict, apperr.CodeAssignmentExists, "order already has a delivery assignment")
		}
		return fmt.Errorf("insert assignment for order %q: %w", a.OrderID, err)
	}
	return nil
}

// GetAssignment - returns an assignment without locking it.
func (r *TxRepo) GetAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `
        SELECT `+assignmentColumns+` FROM delivery_assignments WHERE id = $1
    `, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment %s: %w", id, err)
	}
	return a, nil
}

// LockAssignment - returns an assignment and holds its row lock.
func (r *TxRepo) LockAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `
        SELECT `+assignmentColumns+` FROM delivery_assignments WHERE id = $1 FOR UPDATE
    `, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock assignment %s: %w", id, err)
	}
	return a, nil
}

// ClaimAssignment - binds the courier to an open assignment.
// The guard holds only while the assignment is unclaimed and the courier still has a pending offer.
func (r *TxRepo) ClaimAssignment(ctx context.Context, id uuid.UUID, courierID int64, at time.Time) (string, bool, error) {
	var orderID string
	err := r.tx.QueryRow(ctx, `
        UPDATE delivery_assignments a
        SET courier_id = $2, status = $3, assigned_at = $4, updated_at = $4
        WHERE a.id = $1
          AND a.status = $5
          AND a.courier_id IS NULL
          AND EXISTS (
              SELECT 1 FROM delivery_candidates c
              WHERE c.assignment_id = a.id AND c.courier_id = $2 AND c.status = $6
          )
        RETURNING a.order_id
    `, id, courierID, string(domain.AssignmentRiderAssigned), at,
		string(domain.AssignmentLookingForRider), string(domain.CandidatePending)).Scan(&orderID)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}
		if violates(err, constraintActiveCourier) {
			return "", false, apperr.New(apperr.ErrConflict, apperr.CodeCourierOccupied, "courier already has an active delivery")
		}
		return "", false, fmt.Errorf("claim assignment %s: %w", id, err)
	}
	return orderID, true, nil
}

var stampColumn = map[domain.AssignmentStatus]string{
	domain.AssignmentRiderAssigned: "assigned_at",
	domain.AssignmentPickedUp:      "picked_up_at",
	domain.AssignmentDelivered:     "delivered_at",
	domain.AssignmentCancelled:     "cancelled_at",
}

// AdvanceAssignment - moves the assignment from -> to and stamps the matching timestamp column.
func (r *TxRepo) AdvanceAssignment(ctx context.Context, id uuid.UUID, from, to domain.AssignmentStatus, at time.Time) (bool, error) {
	col, ok := stampColumn[to]
	if !ok {
		return false, fmt.Errorf("advance assignment %s: no timestamp for status %q", id, to)
	}
	ct, err := r.tx.Exec(ctx, fmt.Sprintf(`
        UPDATE delivery_assignments
        SET status = $3, %s = $4, updated_at = $4
        WHERE id = $1 AND status = $2
    `, col), id, string(from), string(to), at)
	if err != nil {
		return false, fmt.Errorf("advance assignment %s to %s: %w", id, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// EligibleCouriers - returns online, active, available couriers with a known location in id order.
func (r *TxRepo) EligibleCouriers(ctx context.Context) ([]domain.LocatedCourier, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, latitude, longitude
        FROM couriers
        WHERE is_online AND is_active
          AND status = $1
          AND latitude IS NOT NULL AND longitude IS NOT NULL
        ORDER BY id
    `, string(domain.CourierAvailable))
	if err != nil {
		return nil, fmt.Errorf("list eligible couriers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LocatedCourier, 0)
	for rows.Next() {
		var c domain.LocatedCourier
		if err := rows.Scan(&c.ID, &c.Location.Lat, &c.Location.Lng); err != nil {
			return nil, fmt.Errorf("scan eligible courier: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// OccupyCourier - flips an available courier to occupied.
func (r *TxRepo) OccupyCourier(ctx context.Context, courierID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE couriers
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status = $3
    `, courierID, string(domain.CourierOccupied), string(domain.CourierAvailable))
	if err != nil {
		return false, fmt.Errorf("occupy courier %d: %w", courierID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseCourier - makes the courier available again.
func (r *TxRepo) ReleaseCourier(ctx context.Context, courierID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE couriers
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, courierID, string(domain.CourierAvailable))
	if err != nil {
		return fmt.Errorf("release courier %d: %w", courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %d not found", courierID)
	}
	return nil
}

// InsertCandidates - bulk inserts pending offers.
func (r *TxRepo) InsertCandidates(ctx context.Context, assignmentID uuid.UUID, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	id := pgtype.UUID{Bytes: assignmentID, Valid: true}
	_, err := r.tx.CopyFrom(ctx,
		pgx.Identifier{"delivery_candidates"},
		[]string{"assignment_id", "courier_id", "distance_km", "status"},
		pgx.CopyFromSlice(len(candidates), func(i int) ([]any, error) {
			c := candidates[i]
			return []any{id, c.CourierID, c.DistanceKm, string(domain.CandidatePending)}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert candidates for assignment %s: %w", assignmentID, err)
	}
	return nil
}

// CandidateStatus - returns the courier's offer status for the assignment.
func (r *TxRepo) CandidateStatus(ctx context.Context, assignmentID uuid.UUID, courierID int64) (domain.CandidateStatus, bool, error) {
	var st domain.CandidateStatus
	err := r.tx.QueryRow(ctx, `
        SELECT status FROM delivery_candidates WHERE assignment_id = $1 AND courier_id = $2
    `, assignmentID, courierID).Scan(&st)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get candidate %s/%d: %w", assignmentID, courierID, err)
	}
	return st, true, nil
}

// AcceptCandidate - marks the courier's pending offer as accepted.
func (r *TxRepo) AcceptCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_candidates
        SET status = $3, responded_at = $4
        WHERE assignment_id = $1 AND courier_id = $2 AND status = $5
    `, assignmentID, courierID, string(domain.CandidateAccepted), at, string(domain.CandidatePending))
	if err != nil {
		if violates(err, constraintAcceptedOnceOnly) {
			return apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "assignment already accepted")
		}
		return fmt.Errorf("accept candidate %s/%d: %w", assignmentID, courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "offer is no longer pending")
	}
	return nil
}

// ExpireSiblings - expires every remaining pending offer and returns the affected couriers.
func (r *TxRepo) ExpireSiblings(ctx context.Context, assignmentID uuid.UUID, at time.Time) ([]int64, error) {
	rows, err := r.tx.Query(ctx, `
        UPDATE delivery_candidates
        SET status = $2, responded_at = $3
        WHERE assignment_id = $1 AND status = $4
        RETURNING courier_id
    `, assignmentID, string(domain.CandidateExpired), at, string(domain.CandidatePending))
	if err != nil {
		return nil, fmt.Errorf("expire candidates of %s: %w", assignmentID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("expire candidates of %s: %w", assignmentID, err)
	}
	return ids, nil
}

// DeclineCandidate - marks the courier's pending offer as declined.
func (r *TxRepo) DeclineCandidate(ctx context.Context, assignmentID uuid.UUID, courierID int64, at time.Time) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_candidates
        SET status = $3, responded_at = $4
        WHERE assignment_id = $1 AND courier_id = $2 AND status = $5
    `, assignmentID, courierID, string(domain.CandidateDeclined), at, string(domain.CandidatePending))
	if err != nil {
		return false, fmt.Errorf("decline candidate %s/%d: %w", assignmentID, courierID, err)
	}
	return ct.RowsAffected() > 0, nil
}
