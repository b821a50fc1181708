package delete_court_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks"
)

const (
	msgInvalidBlockID = "ID de bloqueo inválido"
	msgBlockNotFound  = "bloqueo no encontrado"
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

// Handle DELETE /api/v1/admin/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID, err := handlers.PathUUID(r, "blockId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		if errors.Is(err, blocks.ErrBlockNotFound) {
			handlers.RespondNotFound(w, msgBlockNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocks/{id} - Failed to delete block: id=%s, error=%v", blockID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocks/{id} - Block deleted: id=%s", blockID)
	handlers.RespondNoContent(w)
}
