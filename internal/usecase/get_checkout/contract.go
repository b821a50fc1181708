package get_checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

// CatalogReader источник названий площадки и корта
type CatalogReader interface {
	Venue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)
	Court(ctx context.Context, id uuid.UUID) (*domain.Court, error)
}

// SettingsReader настройки бизнеса и контактная ссылка
type SettingsReader interface {
	Settings(ctx context.Context) (*domain.BusinessSettings, error)
	MessageLink(ctx context.Context, venueID *uuid.UUID, text string) (string, error)
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
