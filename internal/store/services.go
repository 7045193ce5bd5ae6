package store

import (
	"context"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
)

// ServiceRepository is the catalog surface. The scheduling engine only needs
// GetByID; the rest serves the admin catalog screens.
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Create(ctx context.Context, svc domain.Service) (domain.Service, error)
	Update(ctx context.Context, svc domain.Service) (domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
