package get_contact_link

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/service/settings/models"
)

type SettingsService interface {
	ContactLink(ctx context.Context, venueID *uuid.UUID) (*models.ContactLinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
