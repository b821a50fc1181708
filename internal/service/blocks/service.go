package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	blockRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/courtblock"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks/models"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Service сервис ручных блокировок кортов
type Service struct {
	repo   BlockRepository
	courts CourtReader
	logger Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockRepository, courts CourtReader, logger Logger) *Service {
	return &Service{repo: repo, courts: courts, logger: logger}
}

// Create блокирует корт на интервал времени в дату
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: blocking court=%s date=%s %s-%s", req.CourtID, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	block, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Корт должен существовать
	if err := s.ensureCourt(ctx, "Create", req.CourtID); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.repo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: failed to create block for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block id=%s created for court=%s", created.ID, req.CourtID)
	return models.FromDomainBlock(created), nil
}

// List получает блокировки корта на дату
func (s *Service) List(ctx context.Context, courtID uuid.UUID, date string) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks for court=%s date=%s", courtID, date)

	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		s.logger.Warn("List: invalid date=%q", date)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.ensureCourt(ctx, "List", courtID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByCourtAndDate(ctx, courtID, day)
	if err != nil {
		s.logger.Error("List: repository error for court=%s: %v", courtID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlocks(list), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: removing block id=%s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%s not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block id=%s removed", id)
	return nil
}

func (s *Service) parse(req *models.CreateBlockRequest) (*domain.CourtBlock, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidTimeRange, start, end)
	}

	var reason *string
	if req.Reason != nil {
		r := strings.TrimSpace(*req.Reason)
		if len(r) > domain.MaxBlockReasonLength {
			return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
		}
		if r != "" {
			reason = &r
		}
	}

	return &domain.CourtBlock{
		CourtID:   req.CourtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    reason,
	}, nil
}

func (s *Service) ensureCourt(ctx context.Context, op string, courtID uuid.UUID) error {
	if _, err := s.courts.Court(ctx, courtID); err != nil {
		if errors.Is(err, catalogService.ErrCourtNotFound) {
			s.logger.Warn("%s: court id=%s not found", op, courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("%s: failed to get court id=%s: %v", op, courtID, err)
		return fmt.Errorf("%w: %s - get court: %v", ErrInternal, op, err)
	}
	return nil
}
