package list_court_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks"
)

const (
	msgInvalidCourtID = "ID de cancha inválido"
	msgInvalidDate    = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgCourtNotFound  = "cancha no encontrada"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/courts/{courtId}/blocks
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathUUID(r, "courtId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.List(r.Context(), courtID, r.URL.Query().Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, blocks.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("GET /admin/courts/{id}/blocks - Failed to list blocks: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/courts/{id}/blocks - Blocks retrieved: court_id=%s, count=%d", courtID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
