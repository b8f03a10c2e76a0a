package repository

import (
	"context"
	"fmt"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CourierRepo represents the courier directory.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier by its ID.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	var (
		c        domain.Courier
		lat, lng *float64
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, name, phone, is_online, is_active, latitude, longitude, location_updated_at, status, rating
        FROM couriers WHERE id = $1
    `, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Online, &c.Active, &lat, &lng, &c.LocationUpdatedAt, &c.Status, &c.Rating)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	if lat != nil && lng != nil {
		c.Location = &domain.Point{Lat: *lat, Lng: *lng}
	}
	return &c, nil
}

// Create - registers a new courier.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	var lat, lng *float64
	if c.Location != nil {
		lat, lng = &c.Location.Lat, &c.Location.Lng
	}
	status := c.Status
	if status == "" {
		status = domain.CourierAvailable
	}

	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO couriers (name, phone, is_online, is_active, latitude, longitude, location_updated_at, status, rating)
        VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $5::float8 IS NULL THEN NULL ELSE now() END, $7, $8)
        RETURNING id
    `, c.Name, c.Phone, c.Online, c.Active, lat, lng, string(status), c.Rating).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create courier: %w", err)
	}
	return id, nil
}

// UpdateLocation - writes the courier's live position and returns true if the courier exists.
func (r *CourierRepo) UpdateLocation(ctx context.Context, id int64, p domain.Point, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET latitude = $2, longitude = $3, location_updated_at = $4, updated_at = now()
        WHERE id = $1
    `, id, p.Lat, p.Lng, at)
	if err != nil {
		return false, fmt.Errorf("update location of courier %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetOnline - toggles the courier's online flag and returns true if the courier exists.
func (r *CourierRepo) SetOnline(ctx context.Context, id int64, online bool) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers SET is_online = $2, updated_at = now() WHERE id = $1
    `, id, online)
	if err != nil {
		return false, fmt.Errorf("set online of courier %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
