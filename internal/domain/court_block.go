package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CourtBlock represents a manual admin block that overrides availability
type CourtBlock struct {
	ID        uuid.UUID
	CourtID   uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// Overlaps returns true if the block intersects [start, end)
func (b *CourtBlock) Overlaps(start, end types.TimeString) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps проверяет строгое пересечение интервалов [aStart, aEnd) и [bStart, bEnd)
// Соседние интервалы (10:00-11:00 и 11:00-12:00) не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}
