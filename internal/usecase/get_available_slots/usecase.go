package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
)

// UseCase use case для получения слотов корта
type UseCase struct {
	catalog         CatalogReader
	reservationRepo ReservationRepository
	blockRepo       BlockRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogReader,
	reservationRepo ReservationRepository,
	blockRepo BlockRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return NewUseCaseWithTimeProvider(catalog, reservationRepo, blockRepo, location, logger, &RealTimeProvider{})
}

// NewUseCaseWithTimeProvider создает use case с кастомным провайдером времени (для тестов)
func NewUseCaseWithTimeProvider(
	catalog CatalogReader,
	reservationRepo ReservationRepository,
	blockRepo BlockRepository,
	location *time.Location,
	logger Logger,
	timeProvider TimeProvider,
) *UseCase {
	return &UseCase{
		catalog:         catalog,
		reservationRepo: reservationRepo,
		blockRepo:       blockRepo,
		location:        location,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%s, court=%s, date=%s",
		req.VenueID, req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req.VenueID, req.CourtID, req.Date); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем корт
	court, err := uc.getCourt(ctx, req.VenueID, req.CourtID)
	if err != nil {
		return nil, err
	}

	// 3. Параллельно получаем расписание, цены, бронирования и блокировки
	var (
		hours        []*domain.OperatingHours
		rules        []*domain.PriceRule
		reservations []*domain.Reservation
		blocks       []*domain.CourtBlock
	)

	date := req.Date
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hours, err = uc.catalog.OperatingHours(gctx, req.VenueID)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = uc.catalog.PriceRules(gctx, req.VenueID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.reservationRepo.List(gctx, domain.ReservationsFilter{
			CourtID:  &req.CourtID,
			Date:     &date,
			Statuses: domain.ActiveStatuses,
		})
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.blockRepo.ListByCourtAndDate(gctx, req.CourtID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load data for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to load slot data: %v", ErrInternal, err)
	}

	// 4. Строим слоты
	hoursForDay := domain.HoursForDay(hours, date)
	if !hoursForDay.IsOpen() {
		uc.logger.Info("GetAvailableSlots: venue=%s is closed on %s", req.VenueID, date.Format(domain.DateFormat))
	}

	slots := deriveSlots(dayInput{
		Date:         date,
		VenueID:      req.VenueID,
		CourtID:      req.CourtID,
		CourtType:    court.CourtType,
		Hours:        hoursForDay,
		Rules:        rules,
		Reservations: reservations,
		Blocks:       blocks,
		Now:          uc.timeProvider.Now(),
		Location:     uc.location,
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for court=%s, date=%s",
		len(slots), req.CourtID, date.Format(domain.DateFormat))

	return &Response{
		Date:      date,
		VenueID:   req.VenueID,
		CourtID:   req.CourtID,
		CourtType: court.CourtType,
		Slots:     slots,
	}, nil
}

// ExecuteWeek выполняет use case получения слотов на неделю с понедельника
func (uc *UseCase) ExecuteWeek(ctx context.Context, req *WeekRequest) (*WeekResponse, error) {
	uc.logger.Info("GetWeekAvailability: venue=%s, court=%s, weekStart=%s",
		req.VenueID, req.CourtID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req.VenueID, req.CourtID, req.WeekStart); err != nil {
		uc.logger.Warn("GetWeekAvailability: validation failed: %v", err)
		return nil, err
	}

	monday := mondayOf(req.WeekStart)
	sunday := monday.AddDate(0, 0, domain.DaysInWeek-1)

	// 2. Получаем корт
	court, err := uc.getCourt(ctx, req.VenueID, req.CourtID)
	if err != nil {
		return nil, err
	}

	// 3. Загружаем данные за всю неделю одним набором запросов
	var (
		hours        []*domain.OperatingHours
		rules        []*domain.PriceRule
		reservations []*domain.Reservation
		blocks       []*domain.CourtBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hours, err = uc.catalog.OperatingHours(gctx, req.VenueID)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = uc.catalog.PriceRules(gctx, req.VenueID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.reservationRepo.List(gctx, domain.ReservationsFilter{
			CourtID:  &req.CourtID,
			DateFrom: &monday,
			DateTo:   &sunday,
			Statuses: domain.ActiveStatuses,
		})
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.blockRepo.ListByCourtAndPeriod(gctx, req.CourtID, monday, sunday)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("GetWeekAvailability: failed to load data for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to load slot data: %v", ErrInternal, err)
	}

	// 4. Строим слоты по дням
	now := uc.timeProvider.Now()
	days := make([]DaySlots, 0, domain.DaysInWeek)
	for i := 0; i < domain.DaysInWeek; i++ {
		date := monday.AddDate(0, 0, i)
		days = append(days, DaySlots{
			Date: date,
			Slots: deriveSlots(dayInput{
				Date:         date,
				VenueID:      req.VenueID,
				CourtID:      req.CourtID,
				CourtType:    court.CourtType,
				Hours:        domain.HoursForDay(hours, date),
				Rules:        rules,
				Reservations: reservations,
				Blocks:       blocks,
				Now:          now,
				Location:     uc.location,
			}),
		})
	}

	uc.logger.Info("GetWeekAvailability: generated week %s for court=%s", monday.Format(domain.DateFormat), req.CourtID)

	return &WeekResponse{
		WeekStart: monday,
		VenueID:   req.VenueID,
		CourtID:   req.CourtID,
		CourtType: court.CourtType,
		Days:      days,
	}, nil
}

func (uc *UseCase) getCourt(ctx context.Context, venueID, courtID uuid.UUID) (*domain.Court, error) {
	court, err := uc.catalog.Court(ctx, courtID)
	if err != nil {
		if errors.Is(err, catalogService.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%s not found", courtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%s: %v", courtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	if !court.Active || !court.BelongsTo(venueID) {
		uc.logger.Warn("GetAvailableSlots: court id=%s is inactive or not in venue=%s", courtID, venueID)
		return nil, ErrCourtNotFound
	}

	return court, nil
}
