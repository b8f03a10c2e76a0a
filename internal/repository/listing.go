package repository

import (
	"context"
	"fmt"

	"service-dispatch/internal/domain"
)

// AvailableFor - returns the open offers of a courier, nearest first.
func (r *DispatchRepo) AvailableFor(ctx context.Context, courierID int64) ([]domain.AvailableAssignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT a.id, a.order_id, c.distance_km, a.delivery_fee, a.pickup_address, a.delivery_address,
               o.recipient_name, o.recipient_phone, o.total_amount,
               (SELECT count(*) FROM order_items i WHERE i.order_id = o.id),
               a.created_at
        FROM delivery_candidates c
        JOIN delivery_assignments a ON a.id = c.assignment_id
        JOIN orders o ON o.id = a.order_id
        WHERE c.courier_id = $1
          AND c.status = $2
          AND a.status = $3
        ORDER BY c.distance_km, a.created_at
    `, courierID, string(domain.CandidatePending), string(domain.AssignmentLookingForRider))
	if err != nil {
		return nil, fmt.Errorf("list available assignments for courier %d: %w", courierID, err)
	}
	defer rows.Close()

	out := make([]domain.AvailableAssignment, 0)
	for rows.Next() {
		var a domain.AvailableAssignment
		if err := rows.Scan(&a.AssignmentID, &a.OrderID, &a.DistanceKm, &a.DeliveryFee, &a.PickupAddress,
			&a.DeliveryAddress, &a.RecipientName, &a.RecipientPhone, &a.TotalAmount, &a.ItemCount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan available assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountOpen - counts assignments still looking for a rider.
func (r *DispatchRepo) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
        SELECT count(*) FROM delivery_assignments WHERE status = $1
    `, string(domain.AssignmentLookingForRider)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open assignments: %w", err)
	}
	return n, nil
}
