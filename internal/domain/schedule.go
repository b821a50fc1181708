package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// OperatingHours represents opening hours of a venue for one weekday
// DayOfWeek follows time.Weekday: 0 = Sunday ... 6 = Saturday
type OperatingHours struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	DayOfWeek int
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
}

// IsOpen returns true if the venue accepts bookings on that day
func (h *OperatingHours) IsOpen() bool {
	return h != nil && !h.IsClosed && !h.OpenTime.IsZero() && !h.CloseTime.IsZero() &&
		h.OpenTime.IsBefore(h.CloseTime)
}

// HoursForDay возвращает расписание на день недели даты или nil, если строки нет
func HoursForDay(hours []*OperatingHours, date time.Time) *OperatingHours {
	dow := int(date.Weekday())
	for _, h := range hours {
		if h.DayOfWeek == dow {
			return h
		}
	}
	return nil
}

// PriceRule represents a time-banded price for a court type on a weekday
type PriceRule struct {
	ID            uuid.UUID
	VenueID       uuid.UUID
	CourtType     CourtType
	DayOfWeek     int
	StartTime     types.TimeString
	EndTime       types.TimeString
	AmountTotal   int64
	AmountDeposit int64
	IsPeak        bool
}

// Contains returns true if the rule covers a slot starting at t on the weekday
// Range is half-open: start <= t < end
func (r *PriceRule) Contains(venueID uuid.UUID, courtType CourtType, dayOfWeek int, t types.TimeString) bool {
	return r.VenueID == venueID &&
		r.CourtType == courtType &&
		r.DayOfWeek == dayOfWeek &&
		!t.IsBefore(r.StartTime) &&
		t.IsBefore(r.EndTime)
}

// AmountFor returns the amount to charge for the payment mode
func (r *PriceRule) AmountFor(mode PaymentMode) int64 {
	if mode == PaymentModeDeposit {
		return r.AmountDeposit
	}
	return r.AmountTotal
}

// FindPriceRule ищет правило цены, покрывающее слот. Диапазоны не пересекаются,
// поэтому берется первое совпадение
func FindPriceRule(rules []*PriceRule, venueID uuid.UUID, courtType CourtType, date time.Time, start types.TimeString) *PriceRule {
	dow := int(date.Weekday())
	for _, rule := range rules {
		if rule.Contains(venueID, courtType, dow, start) {
			return rule
		}
	}
	return nil
}
