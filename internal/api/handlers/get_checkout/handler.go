package get_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	getCheckout "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_checkout"
)

const (
	msgInvalidReservationID = "ID de reserva inválido"
	msgReservationNotFound  = "reserva no encontrada"
	msgReservationCancelled = "la reserva fue cancelada"
)

type Handler struct {
	useCase GetCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase GetCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathUUID(r, "reservationId")
	if err != nil {
		h.logger.Warn("GET /reservations/{id}/checkout - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCheckout.Request{ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, getCheckout.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/checkout - Reservation not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, getCheckout.ErrReservationCancelled):
			h.logger.Warn("GET /reservations/{id}/checkout - Reservation cancelled: id=%s", reservationID)
			handlers.RespondGone(w, msgReservationCancelled)

		case errors.Is(err, getCheckout.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("GET /reservations/{id}/checkout - Failed to get checkout: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id}/checkout - Checkout retrieved: id=%s, step=%s, status=%s",
		reservationID, result.Step, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
