package holdreaper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ExpireHolds(ctx context.Context, status domain.ReservationStatus, now time.Time, withoutProofOnly bool) (int64, error) {
	args := m.Called(ctx, status, now, withoutProofOnly)
	return args.Get(0).(int64), args.Error(1)
}

type recordedMetrics struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *recordedMetrics) AddHoldsExpired(status string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[status] += n
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestReaper_Sweep_HoldOnly(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ExpireHolds", mock.Anything, domain.StatusHold, now, false).Return(int64(2), nil).Once()

	metrics := &recordedMetrics{}
	r := New(repo, metrics, Options{Interval: time.Second}, nopLogger{})
	r.timeProvider = fixedTime{now}

	assert.Equal(t, int64(2), r.Sweep(context.Background()))
	assert.Equal(t, int64(2), metrics.counts["HOLD"])
	repo.AssertExpectations(t)
}

func TestReaper_Sweep_ReleasePending(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ExpireHolds", mock.Anything, domain.StatusHold, now, false).Return(int64(0), nil).Once()
	repo.On("ExpireHolds", mock.Anything, domain.StatusPending, now, true).Return(int64(3), nil).Once()

	metrics := &recordedMetrics{}
	r := New(repo, metrics, Options{Interval: time.Second, ReleasePending: true}, nopLogger{})
	r.timeProvider = fixedTime{now}

	assert.Equal(t, int64(3), r.Sweep(context.Background()))
	assert.Equal(t, int64(3), metrics.counts["PENDING"])
	assert.Zero(t, metrics.counts["HOLD"])
	repo.AssertExpectations(t)
}

func TestReaper_Sweep_ErrorIsNotFatal(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ExpireHolds", mock.Anything, domain.StatusHold, now, false).Return(int64(0), errors.New("db down")).Once()
	repo.On("ExpireHolds", mock.Anything, domain.StatusPending, now, true).Return(int64(1), nil).Once()

	r := New(repo, nil, Options{ReleasePending: true}, nopLogger{})
	r.timeProvider = fixedTime{now}

	assert.Equal(t, int64(1), r.Sweep(context.Background()))
	repo.AssertExpectations(t)
}

type tickingRepo struct {
	calls atomic.Int32
}

func (r *tickingRepo) ExpireHolds(ctx context.Context, status domain.ReservationStatus, now time.Time, withoutProofOnly bool) (int64, error) {
	r.calls.Add(1)
	return 0, nil
}

func TestReaper_Run_StopsOnCancel(t *testing.T) {
	repo := &tickingRepo{}
	r := New(repo, nil, Options{Interval: 5 * time.Millisecond}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.calls.Load() > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
