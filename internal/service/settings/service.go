package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-CourtBooking/internal/service/settings/models"
)

// ContactDefaults значения для ссылки WhatsApp, если в настройках номер не задан
type ContactDefaults struct {
	WhatsApp string
	Message  string
}

// Service сервис настроек бизнеса
type Service struct {
	repo      SettingsRepository
	venues    VenueReader
	txManager TransactionManager
	contact   ContactDefaults
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	repo SettingsRepository,
	venues VenueReader,
	txManager TransactionManager,
	contact ContactDefaults,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		venues:    venues,
		txManager: txManager,
		contact:   contact,
		logger:    logger,
	}
}

// Settings возвращает текущие настройки в domain модели или nil, если они не заданы
func (s *Service) Settings(ctx context.Context) (*domain.BusinessSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: Settings - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// Get получает полные настройки (для администратора)
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching business settings")

	settings, err := s.Settings(ctx)
	if err != nil {
		s.logger.Error("Get: %v", err)
		return nil, err
	}
	if settings == nil {
		s.logger.Warn("Get: business settings are not configured")
		return nil, ErrSettingsNotFound
	}

	return models.FromDomainSettings(settings), nil
}

// GetPublic получает публичные настройки: название, WhatsApp и политику отмены
func (s *Service) GetPublic(ctx context.Context) (*models.PublicSettingsResponse, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		s.logger.Error("GetPublic: %v", err)
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}

	return models.FromDomainPublicSettings(settings), nil
}

// Upsert обновляет единственную строку настроек или создает ее
// Строка читается с блокировкой FOR UPDATE внутри транзакции
func (s *Service) Upsert(ctx context.Context, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: saving business settings")

	if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) == "" {
		s.logger.Warn("Upsert: empty business name")
		return nil, fmt.Errorf("%w: businessName must not be empty", ErrInvalidInput)
	}

	var saved *domain.BusinessSettings
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Получаем текущие настройки с блокировкой
		current, err := s.repo.Get(ctx)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Upsert: failed to get settings: %v", err)
			return fmt.Errorf("%w: Upsert - get settings: %v", ErrInternal, err)
		}

		// 2. Настроек нет - создаем
		if current == nil {
			if req.BusinessName == nil {
				s.logger.Warn("Upsert: businessName is required on first save")
				return fmt.Errorf("%w: businessName is required", ErrInvalidInput)
			}

			fresh := &domain.BusinessSettings{}
			req.ApplyTo(fresh)
			saved, err = s.repo.Create(ctx, fresh)
			if err != nil {
				s.logger.Error("Upsert: failed to create settings: %v", err)
				return fmt.Errorf("%w: Upsert - create settings: %v", ErrInternal, err)
			}
			return nil
		}

		// 3. Обновляем существующие
		req.ApplyTo(current)
		saved, err = s.repo.Update(ctx, current.ID, current)
		if err != nil {
			s.logger.Error("Upsert: failed to update settings id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: Upsert - update settings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: business settings id=%s saved", saved.ID)
	return models.FromDomainSettings(saved), nil
}

// ContactLink собирает ссылку WhatsApp
// Номер берется из настроек, затем из площадки, затем из значения по умолчанию
func (s *Service) ContactLink(ctx context.Context, venueID *uuid.UUID) (*models.ContactLinkResponse, error) {
	phone, err := s.contactPhone(ctx, venueID)
	if err != nil {
		return nil, err
	}

	url, err := whatsapp.BuildLink(phone, s.contact.Message)
	if errors.Is(err, whatsapp.ErrEmptyPhone) {
		s.logger.Warn("ContactLink: no contact phone configured")
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		s.logger.Error("ContactLink: failed to build link for phone=%q: %v", phone, err)
		return nil, fmt.Errorf("%w: ContactLink - build link: %v", ErrInternal, err)
	}

	return &models.ContactLinkResponse{Phone: phone, URL: url}, nil
}

// MessageLink собирает ссылку WhatsApp с произвольным текстом
func (s *Service) MessageLink(ctx context.Context, venueID *uuid.UUID, text string) (string, error) {
	phone, err := s.contactPhone(ctx, venueID)
	if err != nil {
		return "", err
	}
	return whatsapp.BuildLink(phone, text)
}

func (s *Service) contactPhone(ctx context.Context, venueID *uuid.UUID) (string, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		s.logger.Error("ContactLink: %v", err)
		return "", err
	}
	if settings != nil && settings.WhatsApp != nil && *settings.WhatsApp != "" {
		return *settings.WhatsApp, nil
	}

	if venueID != nil && s.venues != nil {
		venue, err := s.venues.Venue(ctx, *venueID)
		if err != nil {
			s.logger.Warn("ContactLink: venue id=%s unavailable: %v", *venueID, err)
			return "", ErrVenueNotFound
		}
		if venue.WhatsApp != nil && *venue.WhatsApp != "" {
			return *venue.WhatsApp, nil
		}
	}

	return s.contact.WhatsApp, nil
}
