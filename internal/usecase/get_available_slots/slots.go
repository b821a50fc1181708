package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// dayInput данные для расчета слотов одного корта на одну дату
type dayInput struct {
	Date         time.Time
	VenueID      uuid.UUID
	CourtID      uuid.UUID
	CourtType    domain.CourtType
	Hours        *domain.OperatingHours // nil, если на день недели нет строки расписания
	Rules        []*domain.PriceRule
	Reservations []*domain.Reservation
	Blocks       []*domain.CourtBlock
	Now          time.Time
	Location     *time.Location
}

// deriveSlots строит часовые слоты между открытием и закрытием
// Нецелые часы работы округляются внутрь: открытие вверх, закрытие вниз
//
// Приоритет статуса для каждого часа:
// blocked (блокировка корта) > booked (PENDING, PAID) > hold (HOLD с неистекшим сроком) > available
func deriveSlots(in dayInput) []domain.TimeSlot {
	if !in.Hours.IsOpen() {
		return []domain.TimeSlot{}
	}

	open := in.Hours.OpenTime.CeilHour()
	closeAt := in.Hours.CloseTime.FloorHour()

	slots := make([]domain.TimeSlot, 0, max(0, closeAt.Hour()-open.Hour()))
	for start := open; ; {
		end, err := start.AddMinutes(domain.SlotDurationMinutes)
		if err != nil || end.IsAfter(closeAt) {
			break
		}

		slot := domain.TimeSlot{
			StartTime: start,
			EndTime:   end,
			Status:    slotStatus(in, start, end),
		}
		slot.Available = slot.Status == domain.SlotAvailable && !start.On(in.Date, in.Location).Before(in.Now)

		if rule := domain.FindPriceRule(in.Rules, in.VenueID, in.CourtType, in.Date, start); rule != nil {
			slot.Price = ptr.Ptr(rule.AmountTotal)
			slot.Deposit = ptr.Ptr(rule.AmountDeposit)
			slot.IsPeak = rule.IsPeak
		}

		slots = append(slots, slot)
		start = end
	}

	return slots
}

func slotStatus(in dayInput, start, end types.TimeString) domain.SlotStatus {
	for _, b := range in.Blocks {
		if b.CourtID == in.CourtID && sameDate(b.Date, in.Date) && b.Overlaps(start, end) {
			return domain.SlotBlocked
		}
	}

	held := false
	for _, r := range in.Reservations {
		if r.CourtID != in.CourtID || !r.IsOnDate(in.Date) {
			continue
		}
		if !domain.Overlaps(r.StartTime, reservationEnd(r), start, end) {
			continue
		}
		if r.IsBooked() {
			return domain.SlotBooked
		}
		if r.IsHeldAt(in.Now) {
			held = true
		}
	}

	if held {
		return domain.SlotHeld
	}
	return domain.SlotAvailable
}

// Бронирование без end_time занимает один слот
func reservationEnd(r *domain.Reservation) types.TimeString {
	if !r.EndTime.IsZero() && r.StartTime.IsBefore(r.EndTime) {
		return r.EndTime
	}
	end, err := r.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return r.StartTime
	}
	return end
}

func sameDate(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

// mondayOf возвращает понедельник недели, в которую попадает дата
func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % domain.DaysInWeek
	y, m, d := date.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
