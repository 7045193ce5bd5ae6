package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service manages the bookable catalog. Duration validation lives here, on
// the write path: the scheduling engine downstream assumes positive durations
// and only defends against them.
type Service struct {
	repo store.ServiceRepository
}

func NewService(repo store.ServiceRepository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name            string
	DurationMinutes int
	PriceCents      int64
	Description     string
}

func (s *Service) Create(ctx context.Context, in Input) (domain.Service, error) {
	svc, err := fromInput(in)
	if err != nil {
		return domain.Service{}, err
	}
	return s.repo.Create(ctx, svc)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (domain.Service, error) {
	if id == uuid.Nil {
		return domain.Service{}, validationError("service_id is required")
	}
	svc, err := fromInput(in)
	if err != nil {
		return domain.Service{}, err
	}
	svc.ID = id
	return s.repo.Update(ctx, svc)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	if id == uuid.Nil {
		return domain.Service{}, validationError("service_id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("service_id is required")
	}
	return s.repo.Delete(ctx, id)
}

func fromInput(in Input) (domain.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Service{}, validationError("name is required")
	}
	if in.DurationMinutes <= 0 {
		return domain.Service{}, validationError("duration_minutes must be positive")
	}
	if in.DurationMinutes > 24*60 {
		return domain.Service{}, validationError("duration_minutes too long")
	}
	if in.PriceCents < 0 {
		return domain.Service{}, validationError("price_cents must not be negative")
	}

	return domain.Service{
		Name:            name,
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
		Description:     strings.TrimSpace(in.Description),
	}, nil
}
