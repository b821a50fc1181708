package blocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок кортов
type BlockRepository interface {
	Create(ctx context.Context, block *domain.CourtBlock) (*domain.CourtBlock, error)
	ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*domain.CourtBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourtReader источник кортов (сервис каталога)
type CourtReader interface {
	Court(ctx context.Context, id uuid.UUID) (*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
