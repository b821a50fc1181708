package submit_payment_proof

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "ID de reserva inválido"
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidProof         = "comprobante inválido: tipo TXID o IMAGE y valor obligatorio"
	msgReservationNotFound  = "reserva no encontrada"
	msgReservationCancelled = "la reserva fue cancelada"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment-proofs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathUUID(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payment-proofs - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.SubmitPaymentProofRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/payment-proofs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	proof, err := h.service.SubmitPaymentProof(r.Context(), reservationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidProof)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/payment-proofs - Reservation not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrReservationCancelled):
			h.logger.Warn("POST /reservations/{id}/payment-proofs - Reservation cancelled: id=%s", reservationID)
			handlers.RespondGone(w, msgReservationCancelled)

		default:
			h.logger.Error("POST /reservations/{id}/payment-proofs - Failed to submit proof: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/payment-proofs - Proof submitted: reservation_id=%s, proof_id=%s", reservationID, proof.ID)
	handlers.RespondJSON(w, http.StatusCreated, proof)
}
