package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// UpsertSettingsRequest запрос на сохранение настроек
// Все поля опциональны - обновляются только переданные значения
// При первом сохранении businessName обязателен
type UpsertSettingsRequest struct {
	BusinessName           *string `json:"businessName,omitempty"`
	WhatsApp               *string `json:"whatsapp,omitempty"`
	WebpayLinkDeposit      *string `json:"webpayLinkDeposit,omitempty"`
	WebpayLinkFull         *string `json:"webpayLinkFull,omitempty"`
	WebpayPlusCommerceCode *string `json:"webpayPlusCommerceCode,omitempty"`
	WebpayPlusAPIKey       *string `json:"webpayPlusApiKey,omitempty"`
	WebpayPlusEnvironment  *string `json:"webpayPlusEnvironment,omitempty"`
	CancellationPolicy     *string `json:"cancellationPolicy,omitempty"`
}

// ApplyTo переносит переданные поля на настройки
func (r *UpsertSettingsRequest) ApplyTo(s *domain.BusinessSettings) {
	if r.BusinessName != nil {
		s.BusinessName = *r.BusinessName
	}
	assign(&s.WhatsApp, r.WhatsApp)
	assign(&s.WebpayLinkDeposit, r.WebpayLinkDeposit)
	assign(&s.WebpayLinkFull, r.WebpayLinkFull)
	assign(&s.WebpayPlusCommerceCode, r.WebpayPlusCommerceCode)
	assign(&s.WebpayPlusAPIKey, r.WebpayPlusAPIKey)
	assign(&s.WebpayPlusEnvironment, r.WebpayPlusEnvironment)
	assign(&s.CancellationPolicy, r.CancellationPolicy)
}

// Пустая строка очищает значение
func assign(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	val := *v
	*dst = &val
}

// Response модели

// SettingsResponse полные настройки для администратора
type SettingsResponse struct {
	ID                     uuid.UUID `json:"id"`
	BusinessName           string    `json:"businessName"`
	WhatsApp               *string   `json:"whatsapp,omitempty"`
	WebpayLinkDeposit      *string   `json:"webpayLinkDeposit,omitempty"`
	WebpayLinkFull         *string   `json:"webpayLinkFull,omitempty"`
	WebpayPlusCommerceCode *string   `json:"webpayPlusCommerceCode,omitempty"`
	WebpayPlusAPIKey       *string   `json:"webpayPlusApiKey,omitempty"`
	WebpayPlusEnvironment  *string   `json:"webpayPlusEnvironment,omitempty"`
	CancellationPolicy     *string   `json:"cancellationPolicy,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// PublicSettingsResponse публичная часть настроек, без платежных ключей
type PublicSettingsResponse struct {
	BusinessName       string  `json:"businessName"`
	WhatsApp           *string `json:"whatsapp,omitempty"`
	CancellationPolicy *string `json:"cancellationPolicy,omitempty"`
}

// ContactLinkResponse ссылка для связи через WhatsApp
type ContactLinkResponse struct {
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// Методы конвертации

func FromDomainSettings(s *domain.BusinessSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		ID:                     s.ID,
		BusinessName:           s.BusinessName,
		WhatsApp:               s.WhatsApp,
		WebpayLinkDeposit:      s.WebpayLinkDeposit,
		WebpayLinkFull:         s.WebpayLinkFull,
		WebpayPlusCommerceCode: s.WebpayPlusCommerceCode,
		WebpayPlusAPIKey:       s.WebpayPlusAPIKey,
		WebpayPlusEnvironment:  s.WebpayPlusEnvironment,
		CancellationPolicy:     s.CancellationPolicy,
		UpdatedAt:              s.UpdatedAt,
	}
}

func FromDomainPublicSettings(s *domain.BusinessSettings) *PublicSettingsResponse {
	if s == nil {
		return nil
	}
	return &PublicSettingsResponse{
		BusinessName:       s.BusinessName,
		WhatsApp:           s.WhatsApp,
		CancellationPolicy: s.CancellationPolicy,
	}
}
