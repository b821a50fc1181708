package get_checkout

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("get_checkout: reservation not found")

	// ErrReservationCancelled возвращается для отмененного бронирования
	ErrReservationCancelled = errors.New("get_checkout: reservation is cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_checkout: internal error")
)
