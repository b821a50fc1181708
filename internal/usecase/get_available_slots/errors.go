package get_available_slots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден, неактивен или принадлежит другой площадке
	ErrCourtNotFound = errors.New("court not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
