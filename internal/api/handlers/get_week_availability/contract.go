package get_week_availability

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
)

type WeekAvailabilityUseCase interface {
	ExecuteWeek(ctx context.Context, req *getAvailableSlots.WeekRequest) (*getAvailableSlots.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
