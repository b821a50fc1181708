package get_week_availability

import (
	"github.com/google/uuid"

	slotsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
)

type WeekAvailabilityResponse struct {
	WeekStart string         `json:"weekStart"`
	VenueID   uuid.UUID      `json:"venueId"`
	CourtID   uuid.UUID      `json:"courtId"`
	CourtType string         `json:"courtType"`
	Days      []DayAvailable `json:"days"`
}

type DayAvailable struct {
	Date  string                       `json:"date"`
	Slots []slotsHandler.AvailableSlot `json:"slots"`
}

func FromUseCaseResponse(resp *getAvailableSlots.WeekResponse) *WeekAvailabilityResponse {
	days := make([]DayAvailable, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayAvailable{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slotsHandler.FromDomainSlots(day.Slots),
		}
	}

	return &WeekAvailabilityResponse{
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		VenueID:   resp.VenueID,
		CourtID:   resp.CourtID,
		CourtType: string(resp.CourtType),
		Days:      days,
	}
}
