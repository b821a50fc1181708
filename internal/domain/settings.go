package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessSettings holds the single-row business configuration
type BusinessSettings struct {
	ID                     uuid.UUID
	BusinessName           string
	WhatsApp               *string
	WebpayLinkDeposit      *string
	WebpayLinkFull         *string
	WebpayPlusCommerceCode *string
	WebpayPlusAPIKey       *string
	WebpayPlusEnvironment  *string
	CancellationPolicy     *string
	UpdatedAt              time.Time
}

// PaymentLink returns the configured payment page for the mode, or nil
func (s *BusinessSettings) PaymentLink(mode PaymentMode) *string {
	if s == nil {
		return nil
	}
	if mode == PaymentModeFull && s.WebpayLinkFull != nil && *s.WebpayLinkFull != "" {
		return s.WebpayLinkFull
	}
	if s.WebpayLinkDeposit != nil && *s.WebpayLinkDeposit != "" {
		return s.WebpayLinkDeposit
	}
	return nil
}

// Role is an application role stored in user_roles
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)
