package submit_payment_proof

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
)

type ReservationService interface {
	SubmitPaymentProof(ctx context.Context, id uuid.UUID, req *models.SubmitPaymentProofRequest) (*models.PaymentProofResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
