package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// ListReservationsRequest фильтры списка бронирований для администратора
type ListReservationsRequest struct {
	VenueID *uuid.UUID `json:"venueId,omitempty"`
	CourtID *uuid.UUID `json:"courtId,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Status  *string    `json:"status,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SubmitPaymentProofRequest запрос на прикрепление подтверждения оплаты
type SubmitPaymentProofRequest struct {
	ProofType string `json:"proofType"` // TXID | IMAGE
	Value     string `json:"value"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              uuid.UUID  `json:"id"`
	VenueID         uuid.UUID  `json:"venueId"`
	CourtID         uuid.UUID  `json:"courtId"`
	VenueName       *string    `json:"venueName,omitempty"`
	CourtName       *string    `json:"courtName,omitempty"`
	Date            string     `json:"date"`      // "2025-03-10"
	StartTime       string     `json:"startTime"` // "18:00"
	EndTime         string     `json:"endTime"`
	CustomerName    string     `json:"customerName"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Status          string     `json:"status"`
	PaymentMode     string     `json:"paymentMode"`
	PaymentProvider string     `json:"paymentProvider"`
	PaymentRef      *string    `json:"paymentRef,omitempty"`
	HoldExpiresAt   *time.Time `json:"holdExpiresAt,omitempty"`
	Amount          int64      `json:"amount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// PaymentProofResponse подтверждение оплаты
type PaymentProofResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	ProofType     string    `json:"proofType"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentProofListResponse список подтверждений оплаты
type PaymentProofListResponse struct {
	PaymentProofs []PaymentProofResponse `json:"paymentProofs"`
}

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	TotalReservations int64 `json:"totalReservations"`
	PendingPayments   int64 `json:"pendingPayments"`
	PaidThisMonth     int64 `json:"paidThisMonth"`
	RevenueThisMonth  int64 `json:"revenueThisMonth"` // CLP
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		VenueID:         r.VenueID,
		CourtID:         r.CourtID,
		VenueName:       r.VenueName,
		CourtName:       r.CourtName,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		CustomerName:    r.CustomerName,
		Phone:           r.Phone,
		Email:           r.Email,
		Status:          string(r.Status),
		PaymentMode:     string(r.PaymentMode),
		PaymentProvider: string(r.PaymentProvider),
		PaymentRef:      r.PaymentRef,
		HoldExpiresAt:   r.HoldExpiresAt,
		Amount:          r.Amount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

func FromDomainPaymentProof(p *domain.PaymentProof) *PaymentProofResponse {
	if p == nil {
		return nil
	}
	return &PaymentProofResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		ProofType:     string(p.ProofType),
		Value:         p.Value,
		CreatedAt:     p.CreatedAt,
	}
}

func FromDomainPaymentProofs(list []*domain.PaymentProof) *PaymentProofListResponse {
	resp := &PaymentProofListResponse{PaymentProofs: make([]PaymentProofResponse, 0, len(list))}
	for _, p := range list {
		resp.PaymentProofs = append(resp.PaymentProofs, *FromDomainPaymentProof(p))
	}
	return resp
}

func FromDomainStats(s *domain.ReservationStats) *StatsResponse {
	return &StatsResponse{
		TotalReservations: s.Total,
		PendingPayments:   s.PendingPayments,
		PaidThisMonth:     s.PaidThisMonth,
		RevenueThisMonth:  s.RevenueThisMonth,
	}
}
