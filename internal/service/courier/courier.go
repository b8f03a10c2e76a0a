package courier

import (
	"context"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
)

var (
	errCourierNotFound = apperr.New(apperr.ErrNotFound, apperr.CodeCourierNotFound, "courier not found")
	errBadCoordinates  = apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "latitude must be within [-90, 90] and longitude within [-180, 180]")
)

// Service coordinates courier presence: live location and the online flag.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errCourierNotFound
	}
	return c, nil
}

// UpdateLocation overwrites the courier's live position.
func (s *Service) UpdateLocation(ctx context.Context, id int64, p domain.Point) error {
	if !geo.ValidPoint(p) {
		return errBadCoordinates
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdateLocation(ctx, id, p, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return errCourierNotFound
	}
	s.logger.Debug("courier location updated",
		logx.CourierID(id),
		logx.Any("lat", p.Lat),
		logx.Any("lng", p.Lng),
	)
	return nil
}

// SetOnline toggles whether the courier receives new offers.
func (s *Service) SetOnline(ctx context.Context, id int64, online bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.SetOnline(ctx, id, online)
	if err != nil {
		return err
	}
	if !ok {
		return errCourierNotFound
	}
	s.logger.Info("courier presence changed",
		logx.String("event", "courier_presence"),
		logx.CourierID(id),
		logx.Any("online", online),
	)
	return nil
}
