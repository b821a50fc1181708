package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	VenueID   uuid.UUID       `json:"venueId"`
	CourtID   uuid.UUID       `json:"courtId"`
	CourtType string          `json:"courtType"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель часового слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"` // available | hold | booked | blocked
	Available bool   `json:"available"`
	Price     *int64 `json:"price,omitempty"`
	Deposit   *int64 `json:"deposit,omitempty"`
	IsPeak    bool   `json:"isPeak"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		VenueID:   resp.VenueID,
		CourtID:   resp.CourtID,
		CourtType: string(resp.CourtType),
		Slots:     FromDomainSlots(resp.Slots),
	}
}

// FromDomainSlots конвертирует слоты в HTTP модель
func FromDomainSlots(slots []domain.TimeSlot) []AvailableSlot {
	result := make([]AvailableSlot, len(slots))
	for i, slot := range slots {
		result[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Status:    string(slot.Status),
			Available: slot.IsSelectable(),
			Price:     slot.Price,
			Deposit:   slot.Deposit,
			IsPeak:    slot.IsPeak,
		}
	}
	return result
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(venueID, courtID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		VenueID: venueID,
		CourtID: courtID,
		Date:    date,
	}, nil
}
