package holdreaper

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// ReservationRepository отмена бронирований с истекшим удержанием
type ReservationRepository interface {
	ExpireHolds(ctx context.Context, status domain.ReservationStatus, now time.Time, withoutProofOnly bool) (int64, error)
}

// MetricsRecorder счетчик отмененных бронирований
type MetricsRecorder interface {
	AddHoldsExpired(status string, n int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Options параметры воркера
type Options struct {
	Interval       time.Duration
	ReleasePending bool // отменять также PENDING без подтверждения оплаты
}

// Reaper периодически освобождает слоты бронирований с истекшим удержанием
type Reaper struct {
	repo         ReservationRepository
	metrics      MetricsRecorder // nil, если метрики выключены
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

func New(repo ReservationRepository, metrics MetricsRecorder, opts Options, logger Logger) *Reaper {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	return &Reaper{
		repo:         repo,
		metrics:      metrics,
		opts:         opts,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Run блокируется до отмены ctx, проходя по бронированиям на каждом тике
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("HoldReaper: started, interval=%s, releasePending=%t", r.opts.Interval, r.opts.ReleasePending)

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("HoldReaper: stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep выполняет один проход и возвращает число отмененных бронирований
func (r *Reaper) Sweep(ctx context.Context) int64 {
	now := r.timeProvider.Now()
	total := r.expire(ctx, domain.StatusHold, now, false)

	if r.opts.ReleasePending {
		total += r.expire(ctx, domain.StatusPending, now, true)
	}
	return total
}

func (r *Reaper) expire(ctx context.Context, status domain.ReservationStatus, now time.Time, withoutProofOnly bool) int64 {
	n, err := r.repo.ExpireHolds(ctx, status, now, withoutProofOnly)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("HoldReaper: failed to expire %s reservations: %v", status, err)
		}
		return 0
	}

	if n > 0 {
		r.logger.Info("HoldReaper: cancelled %d %s reservations with expired hold", n, status)
		if r.metrics != nil {
			r.metrics.AddHoldsExpired(string(status), n)
		}
	}
	return n
}
