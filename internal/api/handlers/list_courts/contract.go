package list_courts

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListCourts(ctx context.Context, req *models.ListCourtsRequest) (*models.CourtListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
