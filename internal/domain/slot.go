package domain

import "github.com/m04kA/SMC-CourtBooking/pkg/types"

// SlotStatus describes why a slot can or cannot be booked
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotHeld      SlotStatus = "hold"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// TimeSlot represents a one-hour bookable interval of a court
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	Available bool   // можно выбрать: статус available и слот не в прошлом
	Price     *int64 // nil, если нет подходящего правила цены
	Deposit   *int64
	IsPeak    bool
}

// IsSelectable returns true if the slot can be picked in the booking flow
func (s *TimeSlot) IsSelectable() bool {
	return s.Status == SlotAvailable && s.Available
}
