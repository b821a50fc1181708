package create_reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCourtNotFound возвращается, когда корт не найден, неактивен или из другой площадки
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrVenueClosed возвращается, когда площадка закрыта в указанную дату
	ErrVenueClosed = errors.New("create_reservation: venue is closed on this date")

	// ErrOutsideHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideHours = errors.New("create_reservation: slot is outside operating hours")

	// ErrSlotInPast возвращается, когда слот уже начался
	ErrSlotInPast = errors.New("create_reservation: slot is in the past")

	// ErrPriceNotFound возвращается, когда для слота нет правила цены
	ErrPriceNotFound = errors.New("create_reservation: no price rule for slot")

	// ErrRateLimited возвращается при превышении лимита запросов клиента
	ErrRateLimited = errors.New("create_reservation: too many requests")

	// ErrIdempotencyInProgress возвращается, когда запрос с тем же ключом еще выполняется
	ErrIdempotencyInProgress = errors.New("create_reservation: request with this idempotency key is in progress")

	// ErrIdempotencyKeyReused возвращается, когда ключ уже использован для другого запроса
	ErrIdempotencyKeyReused = errors.New("create_reservation: idempotency key was used for a different request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// RateLimitError несет время, через которое можно повторить запрос
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%v: retry after %s", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
