package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

type ServicesRepo struct {
	db *bun.DB
}

func NewServicesRepo(db *bun.DB) *ServicesRepo {
	return &ServicesRepo{db: db}
}

func (r *ServicesRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	var svc domain.Service
	err := r.db.NewSelect().
		Model(&svc).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return svc, nil
}

func (r *ServicesRepo) List(ctx context.Context) ([]domain.Service, error) {
	var rows []domain.Service
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ServicesRepo) Create(ctx context.Context, svc domain.Service) (domain.Service, error) {
	m := svc
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Service{}, err
	}
	return m, nil
}

func (r *ServicesRepo) Update(ctx context.Context, svc domain.Service) (domain.Service, error) {
	m := svc
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "duration_minutes", "price_cents", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Service{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Service{}, err
	}
	if affected == 0 {
		return domain.Service{}, store.ErrNotFound
	}
	return m, nil
}

func (r *ServicesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Service)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
