package resident

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

type fakeResidentRepo struct {
	residents map[uuid.UUID]*entity.Resident
	createErr error
	lastList  adapter.ResidentFilter
}

func newFakeResidentRepo(residents ...*entity.Resident) *fakeResidentRepo {
	repo := &fakeResidentRepo{residents: make(map[uuid.UUID]*entity.Resident)}
	for _, r := range residents {
		repo.residents[r.ID] = r
	}
	return repo
}

func (f *fakeResidentRepo) Create(_ context.Context, r *entity.Resident) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.residents[r.ID] = r
	return nil
}

func (f *fakeResidentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Resident, error) {
	r, ok := f.residents[id]
	if !ok {
		return nil, domainerror.ErrResidentNotFound
	}
	return r, nil
}

func (f *fakeResidentRepo) ExistsByIdentityNumber(_ context.Context, identity string) (bool, error) {
	for _, r := range f.residents {
		if r.IdentityNumber == identity {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResidentRepo) List(_ context.Context, filter adapter.ResidentFilter) ([]*entity.Resident, error) {
	f.lastList = filter
	var out []*entity.Resident
	for _, r := range f.residents {
		if filter.ActiveOnly != nil && r.IsActive != *filter.ActiveOnly {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResidentRepo) Update(_ context.Context, r *entity.Resident) error {
	f.residents[r.ID] = r
	return nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
	err     error
}

func (f *fakeAuditRepo) Create(_ context.Context, e *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(context.Context, string, string) ([]*entity.AuditLog, error) {
	return f.entries, nil
}

type fakeWelcome struct {
	sent []adapter.WelcomeInput
	err  error
}

func (f *fakeWelcome) SendWelcome(_ context.Context, input adapter.WelcomeInput) error {
	f.sent = append(f.sent, input)
	return f.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

var errBoom = errors.New("boom")
