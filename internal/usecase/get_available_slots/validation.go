package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(venueID, courtID uuid.UUID, date time.Time) error {
	if venueID == uuid.Nil {
		return fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}

	if courtID == uuid.Nil {
		return fmt.Errorf("%w: courtId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
