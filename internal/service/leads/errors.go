package leads

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStatus возвращается при недопустимом статусе воронки
	ErrInvalidStatus = errors.New("invalid lead status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
