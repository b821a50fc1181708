package create_court_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks/models"
)

const (
	msgInvalidCourtID     = "ID de cancha inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidBlock       = "datos del bloqueo inválidos"
	msgInvalidTimeRange   = "la hora de inicio debe ser anterior a la hora de término"
	msgCourtNotFound      = "cancha no encontrada"
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

// Handle POST /api/v1/admin/courts/{courtId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathUUID(r, "courtId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/courts/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CourtID = courtID

	block, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, blocks.ErrCourtNotFound):
			h.logger.Warn("POST /admin/courts/{id}/blocks - Court not found: court_id=%s", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("POST /admin/courts/{id}/blocks - Failed to create block: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/courts/{id}/blocks - Block created: id=%s, court_id=%s, date=%s, %s-%s",
		block.ID, courtID, block.Date, block.StartTime, block.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
