package get_checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса страницы оплаты
type Request struct {
	ReservationID uuid.UUID
}

// Response состояние оформления бронирования
type Response struct {
	ReservationID uuid.UUID
	Step          domain.BookingStep
	Status        domain.ReservationStatus
	VenueID       uuid.UUID
	VenueName     string
	CourtID       uuid.UUID
	CourtName     string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	PaymentMode   domain.PaymentMode
	Amount        int64
	PaymentLink   string
	HoldExpiresAt *time.Time
	HoldExpired   bool
	ContactLink   string // ссылка на WhatsApp с текстом о бронировании, пустая если номер не найден
}
