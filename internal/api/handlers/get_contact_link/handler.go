package get_contact_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/settings"
)

const (
	msgInvalidVenueID   = "ID de recinto inválido"
	msgVenueNotFound    = "recinto no encontrado"
	msgContactNotConfig = "no hay un número de contacto configurado"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/contact/whatsapp
// Query params: venueId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.QueryUUID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /contact/whatsapp - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	link, err := h.service.ContactLink(r.Context(), venueID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, settings.ErrSettingsNotFound):
			h.logger.Warn("GET /contact/whatsapp - Contact phone not configured")
			handlers.RespondNotFound(w, msgContactNotConfig)

		default:
			h.logger.Error("GET /contact/whatsapp - Failed to build contact link: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /contact/whatsapp - Contact link built")
	handlers.RespondJSON(w, http.StatusOK, link)
}
