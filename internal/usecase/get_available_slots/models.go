package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса слотов корта на дату
type Request struct {
	VenueID uuid.UUID
	CourtID uuid.UUID
	Date    time.Time // Дата без времени
}

// Response модель ответа со слотами на дату
type Response struct {
	Date      time.Time
	VenueID   uuid.UUID
	CourtID   uuid.UUID
	CourtType domain.CourtType
	Slots     []domain.TimeSlot
}

// WeekRequest модель запроса слотов на неделю
type WeekRequest struct {
	VenueID   uuid.UUID
	CourtID   uuid.UUID
	WeekStart time.Time // Любой день недели, приводится к понедельнику
}

// WeekResponse слоты на семь дней начиная с понедельника
type WeekResponse struct {
	WeekStart time.Time
	VenueID   uuid.UUID
	CourtID   uuid.UUID
	CourtType domain.CourtType
	Days      []DaySlots
}

// DaySlots слоты одного дня недели
type DaySlots struct {
	Date  time.Time
	Slots []domain.TimeSlot
}
