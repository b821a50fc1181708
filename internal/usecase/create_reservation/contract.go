package create_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// CatalogReader источник каталога (кэшируемый сервис каталога)
type CatalogReader interface {
	Court(ctx context.Context, id uuid.UUID) (*domain.Court, error)
	OperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error)
	PriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

// RateLimiter ограничитель частоты создания бронирований по клиенту
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (allowed bool, current int, retryAfter time.Duration, err error)
}

// IdempotencyStore хранилище ключей идемпотентности, ключи разделены по subject (клиенту)
type IdempotencyStore interface {
	Acquire(ctx context.Context, subject, key string, lockTTL time.Duration) (bool, error)
	SaveResult(ctx context.Context, subject, key, fingerprint, result string) error
	GetResult(ctx context.Context, subject, key string) (result, fingerprint string, found bool, err error)
	Release(ctx context.Context, subject, key string) error
}

// MetricsRecorder счетчики бизнес-метрик
type MetricsRecorder interface {
	IncReservationCreated(paymentMode string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
