package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// ListCourtsRequest запрос списка кортов площадки
type ListCourtsRequest struct {
	VenueID   uuid.UUID `json:"venueId"`
	CourtType *string   `json:"courtType,omitempty"` // FUTBOL | PADEL
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Comuna      string    `json:"comuna"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	WhatsApp    *string   `json:"whatsapp,omitempty"`
	Photos      []string  `json:"photos"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID        uuid.UUID `json:"id"`
	VenueID   uuid.UUID `json:"venueId"`
	Name      string    `json:"name"`
	CourtType string    `json:"courtType"`
}

// CourtListResponse ответ со списком кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// OperatingHoursResponse часы работы на день недели
type OperatingHoursResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
}

// PriceRuleResponse правило цены
type PriceRuleResponse struct {
	CourtType     string `json:"courtType"`
	DayOfWeek     int    `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	AmountTotal   int64  `json:"amountTotal"`
	AmountDeposit int64  `json:"amountDeposit"`
	IsPeak        bool   `json:"isPeak"`
}

// ScheduleResponse расписание и цены площадки
type ScheduleResponse struct {
	VenueID        uuid.UUID                `json:"venueId"`
	OperatingHours []OperatingHoursResponse `json:"operatingHours"`
	PriceRules     []PriceRuleResponse      `json:"priceRules"`
}

// Методы конвертации

func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	photos := v.Photos
	if photos == nil {
		photos = []string{}
	}

	return &VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		Comuna:      v.Comuna,
		Lat:         v.Lat,
		Lng:         v.Lng,
		WhatsApp:    v.WhatsApp,
		Photos:      photos,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromDomainVenues(venues []*domain.Venue) *VenueListResponse {
	resp := &VenueListResponse{Venues: make([]VenueResponse, 0, len(venues))}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, *FromDomainVenue(v))
	}
	return resp
}

func FromDomainCourts(courts []*domain.Court) *CourtListResponse {
	resp := &CourtListResponse{Courts: make([]CourtResponse, 0, len(courts))}
	for _, c := range courts {
		resp.Courts = append(resp.Courts, CourtResponse{
			ID:        c.ID,
			VenueID:   c.VenueID,
			Name:      c.Name,
			CourtType: string(c.CourtType),
		})
	}
	return resp
}

func FromDomainSchedule(venueID uuid.UUID, hours []*domain.OperatingHours, rules []*domain.PriceRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		VenueID:        venueID,
		OperatingHours: make([]OperatingHoursResponse, 0, len(hours)),
		PriceRules:     make([]PriceRuleResponse, 0, len(rules)),
	}

	for _, h := range hours {
		resp.OperatingHours = append(resp.OperatingHours, OperatingHoursResponse{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime.String(),
			CloseTime: h.CloseTime.String(),
			IsClosed:  h.IsClosed,
		})
	}

	for _, r := range rules {
		resp.PriceRules = append(resp.PriceRules, PriceRuleResponse{
			CourtType:     string(r.CourtType),
			DayOfWeek:     r.DayOfWeek,
			StartTime:     r.StartTime.String(),
			EndTime:       r.EndTime.String(),
			AmountTotal:   r.AmountTotal,
			AmountDeposit: r.AmountDeposit,
			IsPeak:        r.IsPeak,
		})
	}

	return resp
}
