package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: админские операции и подтверждения оплаты
type Service struct {
	reservationRepo ReservationRepository
	proofRepo       PaymentProofRepository
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	proofRepo PaymentProofRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return NewServiceWithTimeProvider(reservationRepo, proofRepo, txManager, location, logger, &RealTimeProvider{})
}

// NewServiceWithTimeProvider создает сервис с кастомным провайдером времени (для тестов)
func NewServiceWithTimeProvider(
	reservationRepo ReservationRepository,
	proofRepo PaymentProofRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		proofRepo:       proofRepo,
		txManager:       txManager,
		location:        location,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// List получает бронирования с фильтрами, отсортированные по дате и времени начала
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations venue=%v, court=%v, date=%v, status=%v",
		req.VenueID, req.CourtID, req.Date, req.Status)

	filter := domain.ReservationsFilter{
		VenueID:   req.VenueID,
		CourtID:   req.CourtID,
		Date:      req.Date,
		WithNames: true,
	}

	if req.Status != nil {
		status := domain.ReservationStatus(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d reservations", len(list))
	return models.FromDomainReservations(list), nil
}

// Get получает бронирование по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("Get: fetching reservation id=%s", id)

	res, err := s.getReservation(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// UpdateStatus меняет статус бронирования по таблице допустимых переходов
// Чтение и запись выполняются в одной транзакции с блокировкой строки
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%s, new status=%s", id, req.Status)

	// 1. Валидация входных данных
	next := domain.ReservationStatus(strings.ToUpper(req.Status))
	if !next.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Reservation
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 2. Получаем бронирование с блокировкой
		current, err := s.getReservation(ctx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		// 3. Проверяем допустимость перехода
		if !domain.CanTransition(current.Status, next) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for id=%s", current.Status, next, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, next)
		}

		// 4. Сохраняем
		updated, err = s.reservationRepo.UpdateStatus(ctx, id, next)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: failed to update id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: reservation id=%s is now %s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// ListPaymentProofs получает подтверждения оплаты бронирования, новые первыми
func (s *Service) ListPaymentProofs(ctx context.Context, id uuid.UUID) (*models.PaymentProofListResponse, error) {
	s.logger.Info("ListPaymentProofs: reservation id=%s", id)

	if _, err := s.getReservation(ctx, "ListPaymentProofs", id); err != nil {
		return nil, err
	}

	proofs, err := s.proofRepo.ListByReservation(ctx, id)
	if err != nil {
		s.logger.Error("ListPaymentProofs: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: ListPaymentProofs - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentProofs(proofs), nil
}

// SubmitPaymentProof прикрепляет подтверждение оплаты от клиента
// Статус бронирования не меняется: оплату подтверждает администратор
func (s *Service) SubmitPaymentProof(ctx context.Context, id uuid.UUID, req *models.SubmitPaymentProofRequest) (*models.PaymentProofResponse, error) {
	s.logger.Info("SubmitPaymentProof: reservation id=%s, type=%s", id, req.ProofType)

	// 1. Валидация входных данных
	proofType := domain.ProofType(strings.ToUpper(req.ProofType))
	if !proofType.IsValid() {
		s.logger.Warn("SubmitPaymentProof: invalid proof type=%s", req.ProofType)
		return nil, fmt.Errorf("%w: invalid proof type", ErrInvalidInput)
	}
	value := strings.TrimSpace(req.Value)
	if value == "" || len(value) > domain.MaxProofValueLength {
		s.logger.Warn("SubmitPaymentProof: invalid proof value length=%d", len(value))
		return nil, fmt.Errorf("%w: invalid proof value", ErrInvalidInput)
	}

	// 2. Бронирование должно существовать и быть активным
	res, err := s.getReservation(ctx, "SubmitPaymentProof", id)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.StatusCancelled {
		s.logger.Warn("SubmitPaymentProof: reservation id=%s is cancelled", id)
		return nil, ErrReservationCancelled
	}

	// 3. Сохраняем
	proof, err := s.proofRepo.Create(ctx, &domain.PaymentProof{
		ReservationID: id,
		ProofType:     proofType,
		Value:         value,
	})
	if err != nil {
		s.logger.Error("SubmitPaymentProof: failed to create proof for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SubmitPaymentProof - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SubmitPaymentProof: proof id=%s attached to reservation id=%s", proof.ID, id)
	return models.FromDomainPaymentProof(proof), nil
}

// DashboardStats считает сводку: всего бронирований, ожидающих оплаты, оплаченных за текущий месяц
func (s *Service) DashboardStats(ctx context.Context) (*models.StatsResponse, error) {
	now := s.timeProvider.Now().In(s.location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	s.logger.Info("DashboardStats: month=%s", monthStart.Format("2006-01"))

	stats, err := s.reservationRepo.Stats(ctx, monthStart, nextMonthStart)
	if err != nil {
		s.logger.Error("DashboardStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: DashboardStats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
