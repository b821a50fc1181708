package get_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
)

// UseCase use case для получения страницы оплаты бронирования
type UseCase struct {
	reservationRepo    ReservationRepository
	catalog            CatalogReader
	settings           SettingsReader
	defaultPaymentLink string
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalog CatalogReader,
	settings SettingsReader,
	defaultPaymentLink string,
	logger Logger,
) *UseCase {
	return NewUseCaseWithTimeProvider(reservationRepo, catalog, settings, defaultPaymentLink, logger, &RealTimeProvider{})
}

// NewUseCaseWithTimeProvider создает use case с кастомным провайдером времени (для тестов)
func NewUseCaseWithTimeProvider(
	reservationRepo ReservationRepository,
	catalog CatalogReader,
	settings SettingsReader,
	defaultPaymentLink string,
	logger Logger,
	timeProvider TimeProvider,
) *UseCase {
	return &UseCase{
		reservationRepo:    reservationRepo,
		catalog:            catalog,
		settings:           settings,
		defaultPaymentLink: defaultPaymentLink,
		timeProvider:       timeProvider,
		logger:             logger,
	}
}

// Execute выполняет use case получения страницы оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCheckout: reservation=%s", req.ReservationID)

	// 1. Валидация входных данных
	if req.ReservationID == uuid.Nil {
		return nil, fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("GetCheckout: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("GetCheckout: failed to get reservation id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Шаг оформления определяется статусом
	step, ok := domain.StepForStatus(res.Status)
	if !ok {
		uc.logger.Warn("GetCheckout: reservation id=%s has status %s", res.ID, res.Status)
		return nil, ErrReservationCancelled
	}

	// 4. Ссылка на оплату из настроек
	settings, err := uc.settings.Settings(ctx)
	if err != nil {
		uc.logger.Error("GetCheckout: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	paymentLink := uc.defaultPaymentLink
	if link := settings.PaymentLink(res.PaymentMode); link != nil {
		paymentLink = *link
	}

	// 5. Названия для сводки; отсутствие каталога не мешает оплате
	venueName, courtName := uc.names(ctx, res)

	// 6. Ссылка на WhatsApp с данными бронирования
	contactLink, err := uc.settings.MessageLink(ctx, &res.VenueID, reservationMessage(res, venueName, courtName))
	if err != nil {
		uc.logger.Warn("GetCheckout: contact link unavailable for reservation id=%s: %v", res.ID, err)
		contactLink = ""
	}

	now := uc.timeProvider.Now()
	holdExpired := res.Status != domain.StatusPaid && res.HoldExpiredAt(now)

	uc.logger.Info("GetCheckout: reservation id=%s step=%s holdExpired=%t", res.ID, step, holdExpired)

	return &Response{
		ReservationID: res.ID,
		Step:          step,
		Status:        res.Status,
		VenueID:       res.VenueID,
		VenueName:     venueName,
		CourtID:       res.CourtID,
		CourtName:     courtName,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		PaymentMode:   res.PaymentMode,
		Amount:        res.Amount,
		PaymentLink:   paymentLink,
		HoldExpiresAt: res.HoldExpiresAt,
		HoldExpired:   holdExpired,
		ContactLink:   contactLink,
	}, nil
}

func (uc *UseCase) names(ctx context.Context, res *domain.Reservation) (string, string) {
	var venueName, courtName string

	if venue, err := uc.catalog.Venue(ctx, res.VenueID); err == nil {
		venueName = venue.Name
	} else {
		uc.logger.Warn("GetCheckout: venue id=%s unavailable: %v", res.VenueID, err)
	}

	if court, err := uc.catalog.Court(ctx, res.CourtID); err == nil {
		courtName = court.Name
	} else {
		uc.logger.Warn("GetCheckout: court id=%s unavailable: %v", res.CourtID, err)
	}

	return venueName, courtName
}

// reservationMessage текст сообщения для администратора площадки
func reservationMessage(res *domain.Reservation, venueName, courtName string) string {
	msg := fmt.Sprintf("Hola! Tengo la reserva %s para el %s a las %s",
		res.ID, res.Date.Format(domain.DateFormat), res.StartTime)
	if courtName != "" {
		msg += " en " + courtName
	}
	if venueName != "" {
		msg += " (" + venueName + ")"
	}
	return msg + "."
}
