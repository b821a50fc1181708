package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Create(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
	Update(ctx context.Context, id uuid.UUID, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
}

// VenueReader источник площадок для номера WhatsApp (сервис каталога)
type VenueReader interface {
	Venue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
