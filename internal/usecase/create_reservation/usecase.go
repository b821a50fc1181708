package create_reservation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
)

// idempotencyLockTTL время, на которое занимается ключ идемпотентности
const idempotencyLockTTL = 30 * time.Second

// Options параметры создания бронирования
type Options struct {
	HoldDuration time.Duration
	Location     *time.Location
}

// UseCase use case для создания бронирования
type UseCase struct {
	catalog         CatalogReader
	reservationRepo ReservationRepository
	limiter         RateLimiter      // nil, если Redis выключен
	idempotency     IdempotencyStore // nil, если Redis выключен
	metrics         MetricsRecorder  // nil, если метрики выключены
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogReader,
	reservationRepo ReservationRepository,
	limiter RateLimiter,
	idempotency IdempotencyStore,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	return NewUseCaseWithTimeProvider(catalog, reservationRepo, limiter, idempotency, metrics, opts, logger, &RealTimeProvider{})
}

// NewUseCaseWithTimeProvider создает use case с кастомным провайдером времени (для тестов)
func NewUseCaseWithTimeProvider(
	catalog CatalogReader,
	reservationRepo ReservationRepository,
	limiter RateLimiter,
	idempotency IdempotencyStore,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
	timeProvider TimeProvider,
) *UseCase {
	if opts.HoldDuration <= 0 {
		opts.HoldDuration = domain.DefaultHoldDuration
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		catalog:         catalog,
		reservationRepo: reservationRepo,
		limiter:         limiter,
		idempotency:     idempotency,
		metrics:         metrics,
		opts:            opts,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверки занятости слота нет: две одновременные заявки на один слот создадут две строки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: venue=%s, court=%s, date=%s, time=%s, mode=%s",
		req.VenueID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.PaymentMode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Лимит запросов клиента
	if err := uc.checkRateLimit(ctx, req.ClientKey); err != nil {
		return nil, err
	}

	// 3. Повтор по ключу идемпотентности, ключ действует только для своего клиента
	idemKey := strings.TrimSpace(req.IdempotencyKey)
	subject := idempotencySubject(req.ClientKey)
	fingerprint := requestFingerprint(req)
	if idemKey != "" && uc.idempotency != nil {
		replayed, err := uc.replay(ctx, subject, idemKey, fingerprint)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &Response{Reservation: replayed, Replayed: true}, nil
		}

		acquired, err := uc.idempotency.Acquire(ctx, subject, idemKey, idempotencyLockTTL)
		if err != nil {
			uc.logger.Warn("CreateReservation: idempotency store unavailable, continuing without key: %v", err)
			idemKey = ""
		} else if !acquired {
			uc.logger.Warn("CreateReservation: idempotency key=%s is in progress", idemKey)
			return nil, ErrIdempotencyInProgress
		}
	} else {
		idemKey = ""
	}

	created, err := uc.create(ctx, req)
	if err != nil {
		if idemKey != "" {
			if relErr := uc.idempotency.Release(ctx, subject, idemKey); relErr != nil {
				uc.logger.Warn("CreateReservation: failed to release idempotency key=%s: %v", idemKey, relErr)
			}
		}
		return nil, err
	}

	// 4. Запоминаем результат для повторов
	if idemKey != "" {
		if err := uc.idempotency.SaveResult(ctx, subject, idemKey, fingerprint, created.ID.String()); err != nil {
			uc.logger.Warn("CreateReservation: failed to save idempotency result key=%s: %v", idemKey, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncReservationCreated(string(created.PaymentMode))
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, amount=%d, holdExpiresAt=%s",
		created.ID, created.Amount, created.HoldExpiresAt.Format(time.RFC3339))

	return &Response{Reservation: created}, nil
}

func (uc *UseCase) create(ctx context.Context, req *Request) (*domain.Reservation, error) {
	// 1. Получаем корт
	court, err := uc.catalog.Court(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogService.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%s not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.Active || !court.BelongsTo(req.VenueID) {
		uc.logger.Warn("CreateReservation: court id=%s is inactive or not in venue=%s", req.CourtID, req.VenueID)
		return nil, ErrCourtNotFound
	}

	// 2. Проверяем рабочие часы
	hoursList, err := uc.catalog.OperatingHours(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get operating hours venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	hours := domain.HoursForDay(hoursList, req.Date)
	if !hours.IsOpen() {
		uc.logger.Warn("CreateReservation: venue=%s is closed on %s", req.VenueID, req.Date.Format(domain.DateFormat))
		return nil, ErrVenueClosed
	}

	endTime, err := req.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutsideHours, err)
	}
	if err := validateSlotInHours(hours, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 3. Слот не должен быть в прошлом (по часовому поясу площадки)
	now := uc.timeProvider.Now()
	if req.StartTime.On(req.Date, uc.opts.Location).Before(now) {
		uc.logger.Warn("CreateReservation: slot %s %s is in the past", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotInPast
	}

	// 4. Цена считается на сервере
	rules, err := uc.catalog.PriceRules(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get price rules venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
	}

	rule := domain.FindPriceRule(rules, req.VenueID, court.CourtType, req.Date, req.StartTime)
	if rule == nil {
		uc.logger.Warn("CreateReservation: no price rule for court type=%s, %s %s",
			court.CourtType, req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrPriceNotFound
	}

	// 5. Создаем бронирование
	holdExpiresAt := now.Add(uc.opts.HoldDuration)
	reservation := &domain.Reservation{
		VenueID:         req.VenueID,
		CourtID:         req.CourtID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Status:          domain.StatusPending,
		PaymentMode:     req.PaymentMode,
		PaymentProvider: domain.PaymentProviderWebpayLink,
		HoldExpiresAt:   &holdExpiresAt,
		Amount:          rule.AmountFor(req.PaymentMode),
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) checkRateLimit(ctx context.Context, clientKey string) error {
	if uc.limiter == nil || clientKey == "" {
		return nil
	}

	allowed, current, retryAfter, err := uc.limiter.Allow(ctx, clientKey)
	if err != nil {
		// Redis недоступен: пропускаем запрос
		uc.logger.Warn("CreateReservation: rate limiter unavailable: %v", err)
		return nil
	}
	if !allowed {
		uc.logger.Warn("CreateReservation: rate limit exceeded for client=%s, current=%d", clientKey, current)
		return &RateLimitError{RetryAfter: retryAfter}
	}
	return nil
}

// replay возвращает бронирование, уже созданное по ключу, либо nil
// Если ключ был использован для другого запроса, повтора нет
func (uc *UseCase) replay(ctx context.Context, subject, key, fingerprint string) (*domain.Reservation, error) {
	stored, storedFingerprint, found, err := uc.idempotency.GetResult(ctx, subject, key)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to read idempotency key=%s: %v", key, err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	if storedFingerprint != fingerprint {
		uc.logger.Warn("CreateReservation: idempotency key=%s reused with a different request", key)
		return nil, ErrIdempotencyKeyReused
	}

	id, err := uuid.Parse(stored)
	if err != nil {
		uc.logger.Warn("CreateReservation: corrupted idempotency result key=%s: %v", key, err)
		return nil, nil
	}

	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to load replayed reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to load reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: replayed reservation id=%s for idempotency key=%s", id, key)
	return existing, nil
}

func idempotencySubject(clientKey string) string {
	if clientKey == "" {
		return "anonymous"
	}
	return clientKey
}

// requestFingerprint хэш полей, определяющих бронирование
func requestFingerprint(req *Request) string {
	parts := []string{
		req.VenueID.String(),
		req.CourtID.String(),
		req.Date.Format(domain.DateFormat),
		req.StartTime.String(),
		strings.ToLower(strings.TrimSpace(req.Email)),
		string(req.PaymentMode),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
