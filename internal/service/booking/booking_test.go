package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

type fakeApptRepo struct {
	createFn       func(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	updateFn       func(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	listFn         func(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
	listBlockingFn func(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
}

func (f *fakeApptRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, appt)
}

func (f *fakeApptRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeApptRepo) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, appt)
}

func (f *fakeApptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeApptRepo) List(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, windowStart, windowEnd)
}

func (f *fakeApptRepo) ListBlocking(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	if f.listBlockingFn == nil {
		panic("ListBlocking not configured")
	}
	return f.listBlockingFn(ctx, day, excludeID)
}

type fakeServiceRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.Service, error)
	listFn    func(ctx context.Context) ([]domain.Service, error)
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx)
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc domain.Service) (domain.Service, error) {
	panic("not used")
}

func (f *fakeServiceRepo) Update(ctx context.Context, svc domain.Service) (domain.Service, error) {
	panic("not used")
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

// snapshotRepos builds fakes over a fixed, in-memory appointment and service
// set, honoring the blocking-status, day, and exclude-id semantics of the
// real store.
func snapshotRepos(appts []domain.Appointment, services []domain.Service) (*fakeApptRepo, *fakeServiceRepo) {
	apptRepo := &fakeApptRepo{
		listBlockingFn: func(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
			var out []domain.Appointment
			for _, a := range appts {
				if !a.Status.Blocks() {
					continue
				}
				if excludeID != uuid.Nil && a.ID == excludeID {
					continue
				}
				if !day.IsZero() {
					y1, m1, d1 := day.Date()
					y2, m2, d2 := a.StartTime.Date()
					if y1 != y2 || m1 != m2 || d1 != d2 {
						continue
					}
				}
				out = append(out, a)
			}
			return out, nil
		},
	}

	svcRepo := &fakeServiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Service, error) {
			for _, svc := range services {
				if svc.ID == id {
					return svc, nil
				}
			}
			return domain.Service{}, store.ErrNotFound
		},
		listFn: func(ctx context.Context) ([]domain.Service, error) {
			return services, nil
		},
	}

	return apptRepo, svcRepo
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustService(t interface{ Fatalf(string, ...any) }, appts store.AppointmentRepository, services store.ServiceRepository, cfg Config) *Service {
	svc, err := NewService(appts, services, cfg)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}
