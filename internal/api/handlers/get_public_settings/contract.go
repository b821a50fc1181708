package get_public_settings

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/settings/models"
)

type SettingsService interface {
	GetPublic(ctx context.Context) (*models.PublicSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
