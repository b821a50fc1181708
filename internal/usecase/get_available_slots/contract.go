package get_available_slots

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
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// BlockRepository интерфейс репозитория блокировок кортов
type BlockRepository interface {
	ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*domain.CourtBlock, error)
	ListByCourtAndPeriod(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]*domain.CourtBlock, error)
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
