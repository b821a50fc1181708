package cache

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "courtbooking:v1"

func KeyVenues() string {
	return ns + ":venues"
}

func KeyVenue(id uuid.UUID) string {
	return fmt.Sprintf("%s:venue:%s", ns, id)
}

func KeyCourts(venueID uuid.UUID, courtType string) string {
	if courtType == "" {
		courtType = "all"
	}
	return fmt.Sprintf("%s:venue:%s:courts:%s", ns, venueID, courtType)
}

func KeyCourt(id uuid.UUID) string {
	return fmt.Sprintf("%s:court:%s", ns, id)
}

func KeyOperatingHours(venueID uuid.UUID) string {
	return fmt.Sprintf("%s:venue:%s:hours", ns, venueID)
}

func KeyPriceRules(venueID uuid.UUID) string {
	return fmt.Sprintf("%s:venue:%s:prices", ns, venueID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdempotency(scope, subject, key string) string {
	return fmt.Sprintf("%s:idem:%s:%s:%s", ns, scope, subject, key)
}
