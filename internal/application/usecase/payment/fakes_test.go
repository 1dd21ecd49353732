package payment

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

type fakePaymentRepo struct {
	payments   []*entity.Payment
	lastFilter adapter.PaymentFilter
	err        error
}

func (f *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domainerror.ErrPaymentNotFound
}

func (f *fakePaymentRepo) List(_ context.Context, filter adapter.PaymentFilter) ([]*entity.Payment, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.payments, nil
}

func (f *fakePaymentRepo) ListByResident(_ context.Context, residentID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.ResidentID == residentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

type fakeResidentRepo struct {
	residents map[uuid.UUID]*entity.Resident
}

func newFakeResidentRepo(residents ...*entity.Resident) *fakeResidentRepo {
	repo := &fakeResidentRepo{residents: make(map[uuid.UUID]*entity.Resident)}
	for _, r := range residents {
		repo.residents[r.ID] = r
	}
	return repo
}

func (f *fakeResidentRepo) Create(context.Context, *entity.Resident) error { return nil }

func (f *fakeResidentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Resident, error) {
	r, ok := f.residents[id]
	if !ok {
		return nil, domainerror.ErrResidentNotFound
	}
	return r, nil
}

func (f *fakeResidentRepo) ExistsByIdentityNumber(context.Context, string) (bool, error) {
	return false, nil
}

func (f *fakeResidentRepo) List(context.Context, adapter.ResidentFilter) ([]*entity.Resident, error) {
	return nil, nil
}

func (f *fakeResidentRepo) Update(context.Context, *entity.Resident) error { return nil }

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, e *entity.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(context.Context, string, string) ([]*entity.AuditLog, error) {
	return f.entries, nil
}

var errBoom = errors.New("boom")
