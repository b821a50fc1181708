package catalog

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена или неактивна
	ErrVenueNotFound = errors.New("venue not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
