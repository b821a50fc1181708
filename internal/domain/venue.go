package domain

import (
	"time"

	"github.com/google/uuid"
)

// Venue represents a sports venue with one or more courts
type Venue struct {
	ID          uuid.UUID
	Name        string
	Address     string
	Comuna      string
	Lat         *float64
	Lng         *float64
	WhatsApp    *string
	Photos      []string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CourtType is the sport a court is built for
type CourtType string

const (
	CourtTypeFutbol CourtType = "FUTBOL"
	CourtTypePadel  CourtType = "PADEL"
)

// IsValid returns true for a known court type
func (t CourtType) IsValid() bool {
	return t == CourtTypeFutbol || t == CourtTypePadel
}

// Court represents a bookable court of a venue
type Court struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	Name      string
	CourtType CourtType
	Active    bool
	CreatedAt time.Time
}

// BelongsTo returns true if the court is part of the venue
func (c *Court) BelongsTo(venueID uuid.UUID) bool {
	return c.VenueID == venueID
}

// CourtsFilter фильтр для списка кортов
type CourtsFilter struct {
	VenueID    *uuid.UUID
	CourtType  *CourtType
	ActiveOnly bool
}
