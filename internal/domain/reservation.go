package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusHold      ReservationStatus = "HOLD"
	StatusPending   ReservationStatus = "PENDING"
	StatusPaid      ReservationStatus = "PAID"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusHold, StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions HOLD -> PENDING -> PAID, отмена из любого незавершенного состояния
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusHold:    {StatusPending, StatusPaid, StatusCancelled},
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusCancelled},
}

// CanTransition returns true if a reservation may move from one status to another
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentMode is how much the customer pays upfront
type PaymentMode string

const (
	PaymentModeDeposit PaymentMode = "DEPOSIT"
	PaymentModeFull    PaymentMode = "FULL"
)

// IsValid returns true for a known payment mode
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeDeposit || m == PaymentModeFull
}

// PaymentProvider is the payment channel used for the reservation
type PaymentProvider string

const (
	PaymentProviderWebpayLink PaymentProvider = "WEBPAY_LINK"
	PaymentProviderWebpayPlus PaymentProvider = "WEBPAY_PLUS"
)

// Reservation represents a court booking for a one-hour slot
type Reservation struct {
	ID              uuid.UUID
	VenueID         uuid.UUID
	CourtID         uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	CustomerName    string
	Phone           string
	Email           string
	Status          ReservationStatus
	PaymentMode     PaymentMode
	PaymentProvider PaymentProvider
	PaymentRef      *string
	HoldExpiresAt   *time.Time
	Amount          int64

	// Denormalized for admin listings
	VenueName *string
	CourtName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked returns true if the reservation occupies its slot regardless of hold expiry
func (r *Reservation) IsBooked() bool {
	return r.Status == StatusPending || r.Status == StatusPaid
}

// IsHeldAt returns true if the reservation is a HOLD that has not expired at now
func (r *Reservation) IsHeldAt(now time.Time) bool {
	return r.Status == StatusHold && r.HoldExpiresAt != nil && r.HoldExpiresAt.After(now)
}

// HoldExpiredAt returns true if the hold window has passed
func (r *Reservation) HoldExpiredAt(now time.Time) bool {
	return r.HoldExpiresAt != nil && !r.HoldExpiresAt.After(now)
}

// IsOnDate returns true if the reservation is for the calendar date
func (r *Reservation) IsOnDate(date time.Time) bool {
	return r.Date.Format(DateFormat) == date.Format(DateFormat)
}

// ReservationsFilter фильтр для списка бронирований
// Все поля опциональны
type ReservationsFilter struct {
	VenueID   *uuid.UUID
	CourtID   *uuid.UUID
	Date      *time.Time
	DateFrom  *time.Time
	DateTo    *time.Time
	Status    *ReservationStatus
	Statuses  []ReservationStatus
	WithNames bool // подтягивать названия площадки и корта
}

// ReservationStats сводка для панели администратора
type ReservationStats struct {
	Total            int64
	PendingPayments  int64
	PaidThisMonth    int64
	RevenueThisMonth int64
}

// PaymentProof is evidence of payment attached by the customer
type PaymentProof struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	ProofType     ProofType
	Value         string
	CreatedAt     time.Time
}

// ProofType is the kind of payment evidence
type ProofType string

const (
	ProofTypeTxID  ProofType = "TXID"
	ProofTypeImage ProofType = "IMAGE"
)

// IsValid returns true for a known proof type
func (t ProofType) IsValid() bool {
	return t == ProofTypeTxID || t == ProofTypeImage
}
