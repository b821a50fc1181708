package list_courts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBooking/internal/service/catalog/models"
)

const (
	msgInvalidVenueID   = "ID de recinto inválido"
	msgInvalidCourtType = "tipo de cancha inválido, se espera FUTBOL o PADEL"
	msgVenueNotFound    = "recinto no encontrado"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/courts
// Query params: courtType (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathUUID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/courts - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	req := &models.ListCourtsRequest{VenueID: venueID}
	if ct := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("courtType"))); ct != "" {
		req.CourtType = &ct
	}

	result, err := h.service.ListCourts(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/courts - Invalid court type: venue_id=%s", venueID)
			handlers.RespondBadRequest(w, msgInvalidCourtType)

		case errors.Is(err, catalog.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/courts - Venue not found: venue_id=%s", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		default:
			h.logger.Error("GET /venues/{id}/courts - Failed to list courts: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/courts - Courts retrieved successfully: venue_id=%s, count=%d",
		venueID, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result.Courts)
}
