package create_reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationModels "github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID      uuid.UUID `json:"venueId" validate:"required"`
	CourtID      uuid.UUID `json:"courtId" validate:"required"`
	Date         string    `json:"date" validate:"required"`      // "2025-03-10"
	StartTime    string    `json:"startTime" validate:"required"` // "18:00"
	CustomerName string    `json:"customerName" validate:"required,max=120"`
	Phone        string    `json:"phone" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	PaymentMode  string    `json:"paymentMode" validate:"required,oneof=DEPOSIT FULL deposit full"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(clientKey, idempotencyKey string) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		VenueID:        r.VenueID,
		CourtID:        r.CourtID,
		Date:           date,
		StartTime:      startTime,
		CustomerName:   r.CustomerName,
		Phone:          r.Phone,
		Email:          r.Email,
		PaymentMode:    domain.PaymentMode(strings.ToUpper(r.PaymentMode)),
		ClientKey:      clientKey,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *reservationModels.ReservationResponse {
	return reservationModels.FromDomainReservation(resp.Reservation)
}
