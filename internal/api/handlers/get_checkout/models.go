package get_checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getCheckout "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_checkout"
)

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	ReservationID uuid.UUID  `json:"reservationId"`
	Step          string     `json:"step"` // payment | confirm
	Status        string     `json:"status"`
	VenueID       uuid.UUID  `json:"venueId"`
	VenueName     string     `json:"venueName,omitempty"`
	CourtID       uuid.UUID  `json:"courtId"`
	CourtName     string     `json:"courtName,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	PaymentMode   string     `json:"paymentMode"`
	Amount        int64      `json:"amount"`
	PaymentLink   string     `json:"paymentLink,omitempty"`
	HoldExpiresAt *time.Time `json:"holdExpiresAt,omitempty"`
	HoldExpired   bool       `json:"holdExpired"`
	ContactLink   string     `json:"contactLink,omitempty"`
}

func FromUseCaseResponse(resp *getCheckout.Response) *CheckoutResponse {
	return &CheckoutResponse{
		ReservationID: resp.ReservationID,
		Step:          string(resp.Step),
		Status:        string(resp.Status),
		VenueID:       resp.VenueID,
		VenueName:     resp.VenueName,
		CourtID:       resp.CourtID,
		CourtName:     resp.CourtName,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		PaymentMode:   string(resp.PaymentMode),
		Amount:        resp.Amount,
		PaymentLink:   resp.PaymentLink,
		HoldExpiresAt: resp.HoldExpiresAt,
		HoldExpired:   resp.HoldExpired,
		ContactLink:   resp.ContactLink,
	}
}
