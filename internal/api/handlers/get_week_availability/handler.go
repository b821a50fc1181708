package get_week_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID = "ID de recinto inválido"
	msgInvalidCourtID = "ID de cancha inválido"
	msgMissingWeek    = "el parámetro weekStart es obligatorio"
	msgInvalidDate    = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgCourtNotFound  = "cancha no encontrada"
)

type Handler struct {
	useCase WeekAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase WeekAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/courts/{courtId}/availability
// Query params: weekStart (required, любой день недели)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathUUID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/courts/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	courtID, err := handlers.PathUUID(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	weekStartStr := r.URL.Query().Get("weekStart")
	if weekStartStr == "" {
		handlers.RespondBadRequest(w, msgMissingWeek)
		return
	}

	weekStart, err := time.Parse(domain.DateFormat, weekStartStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/courts/{id}/availability - Invalid weekStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.ExecuteWeek(r.Context(), &getAvailableSlots.WeekRequest{
		VenueID:   venueID,
		CourtID:   courtID,
		WeekStart: weekStart,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCourtNotFound):
			h.logger.Warn("GET /venues/{id}/courts/{id}/availability - Court not found: court_id=%s", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/courts/{id}/availability - Failed to get availability: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/courts/{id}/availability - Availability retrieved: court_id=%s, week_start=%s",
		courtID, result.WeekStart.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
