package email

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

type fakeQueue struct {
	jobs      map[uuid.UUID]*entity.EmailJob
	createErr error
	updates   int
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *fakeQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	if q.createErr != nil {
		return q.createErr
	}
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var due []*entity.EmailJob
	for _, job := range q.jobs {
		if job.IsDue(now) {
			due = append(due, job)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (q *fakeQueue) Claim(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	job, ok := q.jobs[id]
	if !ok || job.Status != entity.EmailStatusPending {
		return false, nil
	}
	job.Claim(now)
	return true, nil
}

func (q *fakeQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	q.updates++
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) RequeueStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, job := range q.jobs {
		if job.IsStale(cutoff) {
			job.Status = entity.EmailStatusPending
			job.ClaimedAt = nil
			n++
		}
	}
	return n, nil
}

func (q *fakeQueue) only() *entity.EmailJob {
	for _, job := range q.jobs {
		return job
	}
	return nil
}

type tickClock struct {
	now time.Time
}

func (c *tickClock) Now() time.Time { return c.now }

func (c *tickClock) After(d time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

type fakeSender struct {
	sent      []adapter.OutgoingEmail
	failWith  error
	permanent bool
}

func (s *fakeSender) Send(ctx context.Context, email adapter.OutgoingEmail) (*adapter.DeliveryReceipt, error) {
	if s.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if s.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "send failed", s.failWith)
	}
	s.sent = append(s.sent, email)
	return &adapter.DeliveryReceipt{ProviderID: fmt.Sprintf("fake-%d", len(s.sent))}, nil
}

func (s *fakeSender) fail(err error, permanent bool) {
	s.failWith = err
	s.permanent = permanent
}
