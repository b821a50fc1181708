package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/cache"
	catalogRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBooking/internal/service/catalog/models"
)

// Service сервис каталога площадок
// Чтения кэшируются в Redis, если кэш передан; без кэша запросы идут напрямую в БД
type Service struct {
	repo   CatalogRepository
	cache  *cache.Cache
	ttl    time.Duration
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, c *cache.Cache, ttl time.Duration, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Venues возвращает активные площадки, отсортированные по названию
func (s *Service) Venues(ctx context.Context) ([]*domain.Venue, error) {
	return cached(ctx, s, cache.KeyVenues(), func(ctx context.Context) ([]*domain.Venue, error) {
		return s.repo.ListVenues(ctx, true)
	})
}

// Venue возвращает активную площадку
func (s *Service) Venue(ctx context.Context, id uuid.UUID) (*domain.Venue, error) {
	venue, err := cached(ctx, s, cache.KeyVenue(id), func(ctx context.Context) (*domain.Venue, error) {
		return s.repo.GetVenue(ctx, id)
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("%w: Venue - repository error: %v", ErrInternal, err)
	}
	if !venue.Active {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

// Court возвращает корт без проверки активности
func (s *Service) Court(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	court, err := cached(ctx, s, cache.KeyCourt(id), func(ctx context.Context) (*domain.Court, error) {
		return s.repo.GetCourt(ctx, id)
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("%w: Court - repository error: %v", ErrInternal, err)
	}
	return court, nil
}

// Courts возвращает активные корты площадки, опционально по типу
func (s *Service) Courts(ctx context.Context, venueID uuid.UUID, courtType *domain.CourtType) ([]*domain.Court, error) {
	key := ""
	if courtType != nil {
		key = string(*courtType)
	}

	courts, err := cached(ctx, s, cache.KeyCourts(venueID, key), func(ctx context.Context) ([]*domain.Court, error) {
		return s.repo.ListCourts(ctx, domain.CourtsFilter{
			VenueID:    &venueID,
			CourtType:  courtType,
			ActiveOnly: true,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Courts - repository error: %v", ErrInternal, err)
	}
	return courts, nil
}

// OperatingHours возвращает расписание площадки по дням недели
func (s *Service) OperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error) {
	hours, err := cached(ctx, s, cache.KeyOperatingHours(venueID), func(ctx context.Context) ([]*domain.OperatingHours, error) {
		return s.repo.ListOperatingHours(ctx, venueID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: OperatingHours - repository error: %v", ErrInternal, err)
	}
	return hours, nil
}

// PriceRules возвращает правила цен площадки
func (s *Service) PriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error) {
	rules, err := cached(ctx, s, cache.KeyPriceRules(venueID), func(ctx context.Context) ([]*domain.PriceRule, error) {
		return s.repo.ListPriceRules(ctx, venueID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: PriceRules - repository error: %v", ErrInternal, err)
	}
	return rules, nil
}

// ListVenues получает список активных площадок
func (s *Service) ListVenues(ctx context.Context) (*models.VenueListResponse, error) {
	s.logger.Info("ListVenues: fetching active venues")

	venues, err := s.Venues(ctx)
	if err != nil {
		s.logger.Error("ListVenues: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVenues - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVenues(venues), nil
}

// GetVenue получает площадку по ID
func (s *Service) GetVenue(ctx context.Context, id uuid.UUID) (*models.VenueResponse, error) {
	s.logger.Info("GetVenue: fetching venue id=%s", id)

	venue, err := s.Venue(ctx, id)
	if err != nil {
		s.logVenueErr("GetVenue", id, err)
		return nil, err
	}

	return models.FromDomainVenue(venue), nil
}

// ListCourts получает активные корты площадки
func (s *Service) ListCourts(ctx context.Context, req *models.ListCourtsRequest) (*models.CourtListResponse, error) {
	s.logger.Info("ListCourts: fetching courts for venue=%s, type=%v", req.VenueID, req.CourtType)

	var courtType *domain.CourtType
	if req.CourtType != nil {
		ct := domain.CourtType(*req.CourtType)
		if !ct.IsValid() {
			s.logger.Warn("ListCourts: invalid court type=%s", *req.CourtType)
			return nil, fmt.Errorf("%w: invalid court type", ErrInvalidInput)
		}
		courtType = &ct
	}

	// 1. Площадка должна существовать
	if _, err := s.Venue(ctx, req.VenueID); err != nil {
		s.logVenueErr("ListCourts", req.VenueID, err)
		return nil, err
	}

	// 2. Получаем корты
	courts, err := s.Courts(ctx, req.VenueID, courtType)
	if err != nil {
		s.logger.Error("ListCourts: failed to get courts for venue=%s: %v", req.VenueID, err)
		return nil, err
	}

	return models.FromDomainCourts(courts), nil
}

// GetSchedule получает расписание и цены площадки
func (s *Service) GetSchedule(ctx context.Context, venueID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for venue=%s", venueID)

	if _, err := s.Venue(ctx, venueID); err != nil {
		s.logVenueErr("GetSchedule", venueID, err)
		return nil, err
	}

	var (
		hours []*domain.OperatingHours
		rules []*domain.PriceRule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hours, err = s.OperatingHours(gctx, venueID)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.PriceRules(gctx, venueID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("GetSchedule: failed to load schedule for venue=%s: %v", venueID, err)
		return nil, err
	}

	return models.FromDomainSchedule(venueID, hours, rules), nil
}

func (s *Service) logVenueErr(op string, id uuid.UUID, err error) {
	if errors.Is(err, ErrVenueNotFound) {
		s.logger.Warn("%s: venue id=%s not found", op, id)
		return
	}
	s.logger.Error("%s: failed to get venue id=%s: %v", op, id, err)
}

func cached[T any](ctx context.Context, s *Service, key string, loader func(ctx context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return cache.GetOrSetJSON(ctx, s.cache, key, s.ttl, loader)
}
