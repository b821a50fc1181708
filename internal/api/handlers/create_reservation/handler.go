package create_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
)

const (
	idempotencyHeader = "Idempotency-Key"
	maxIdempotencyKey = 128
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "fecha u hora inválida, se espera YYYY-MM-DD y HH:MM"
	msgInvalidIdemKey     = "Idempotency-Key inválida"
	msgInvalidData        = "datos de la reserva inválidos"
	msgCourtNotFound      = "cancha no encontrada"
	msgVenueClosed        = "el recinto está cerrado en la fecha seleccionada"
	msgOutsideHours       = "el horario seleccionado está fuera del horario de atención"
	msgSlotInPast         = "el horario seleccionado ya pasó"
	msgPriceNotFound      = "no hay tarifa configurada para el horario seleccionado"
	msgRateLimited        = "demasiadas solicitudes, intenta nuevamente más tarde"
	msgInProgress         = "una solicitud con la misma Idempotency-Key está en curso"
	msgIdemKeyReused      = "la Idempotency-Key ya se usó para otra reserva"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Headers: Idempotency-Key (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if len(idempotencyKey) > maxIdempotencyKey {
		h.logger.Warn("POST /reservations - Idempotency key too long: %d", len(idempotencyKey))
		handlers.RespondBadRequest(w, msgInvalidIdemKey)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.ClientIP(r), idempotencyKey)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rateErr *createReservation.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			h.logger.Warn("POST /reservations - Rate limited: client=%s, retry_after=%s", useCaseReq.ClientKey, rateErr.RetryAfter)
			handlers.RespondTooManyRequests(w, msgRateLimited, rateErr.RetryAfter)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /reservations - Court not found: court_id=%s", useCaseReq.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrVenueClosed):
			handlers.RespondUnprocessableEntity(w, msgVenueClosed)

		case errors.Is(err, createReservation.ErrOutsideHours):
			handlers.RespondUnprocessableEntity(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrSlotInPast):
			handlers.RespondUnprocessableEntity(w, msgSlotInPast)

		case errors.Is(err, createReservation.ErrPriceNotFound):
			h.logger.Warn("POST /reservations - No price rule: court_id=%s, date=%s, start=%s",
				useCaseReq.CourtID, req.Date, req.StartTime)
			handlers.RespondUnprocessableEntity(w, msgPriceNotFound)

		case errors.Is(err, createReservation.ErrIdempotencyInProgress):
			h.logger.Warn("POST /reservations - Idempotency key in progress")
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, createReservation.ErrIdempotencyKeyReused):
			h.logger.Warn("POST /reservations - Idempotency key reused: client=%s", useCaseReq.ClientKey)
			handlers.RespondUnprocessableEntity(w, msgIdemKeyReused)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: court_id=%s, error=%v", useCaseReq.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Replayed {
		h.logger.Info("POST /reservations - Replayed reservation: id=%s", response.ID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, court_id=%s, date=%s, start=%s",
		response.ID, response.CourtID, response.Date, response.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
