package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID == uuid.Nil {
		return fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}
	if req.CourtID == uuid.Nil {
		return fmt.Errorf("%w: courtId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Слоты длятся ровно час и начинаются в целый час
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsWholeHour() {
		return fmt.Errorf("%w: startTime must be a whole hour, got %s", ErrInvalidInput, req.StartTime)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	// Только сам адрес: формы с именем ("Ana <ana@b.cl>") не принимаются
	if err := validate.Var(strings.TrimSpace(req.Email), "required,email,max=254"); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if !req.PaymentMode.IsValid() {
		return fmt.Errorf("%w: invalid paymentMode %q", ErrInvalidInput, req.PaymentMode)
	}

	return nil
}

// validateSlotInHours проверяет, что часовой слот целиком лежит в рабочих часах
// Границы округляются внутрь до целых часов
func validateSlotInHours(hours *domain.OperatingHours, start, end types.TimeString) error {
	open := hours.OpenTime.CeilHour()
	closeAt := hours.CloseTime.FloorHour()

	if start.IsBefore(open) || end.IsAfter(closeAt) {
		return fmt.Errorf("%w: %s-%s not within %s-%s", ErrOutsideHours, start, end, open, closeAt)
	}
	return nil
}
