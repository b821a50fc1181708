package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListVenues(ctx context.Context, activeOnly bool) ([]*domain.Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)
	ListCourts(ctx context.Context, filter domain.CourtsFilter) ([]*domain.Court, error)
	GetCourt(ctx context.Context, id uuid.UUID) (*domain.Court, error)
	ListOperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error)
	ListPriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
