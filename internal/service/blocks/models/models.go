package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на блокировку корта
type CreateBlockRequest struct {
	CourtID   uuid.UUID `json:"-"`
	Date      string    `json:"date"`      // "2025-03-10"
	StartTime string    `json:"startTime"` // "14:00"
	EndTime   string    `json:"endTime"`   // "16:00"
	Reason    *string   `json:"reason,omitempty"`
}

// Response модели

// BlockResponse блокировка корта
type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	CourtID   uuid.UUID `json:"courtId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

func FromDomainBlock(b *domain.CourtBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

func FromDomainBlocks(list []*domain.CourtBlock) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(list))}
	for _, b := range list {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
