package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID      uuid.UUID
	CourtID      uuid.UUID
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Начало слота, целый час
	CustomerName string
	Phone        string
	Email        string
	PaymentMode  domain.PaymentMode

	ClientKey      string // Идентификатор клиента для лимита (IP)
	IdempotencyKey string // Заголовок Idempotency-Key (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Replayed    bool // true, если вернули ранее созданное бронирование по ключу идемпотентности
}
