package book_appointment

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("lead not found")

	// ErrMissingContactInfo возвращается, когда у лида нет email или телефона
	ErrMissingContactInfo = errors.New("lead has no contact information")

	// ErrInvalidPhone возвращается, когда телефон лида не нормализуется в E.164
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidAppointmentTime возвращается при некорректном времени записи
	// (не парсится, в прошлом или вне сетки рабочего дня)
	ErrInvalidAppointmentTime = errors.New("invalid appointment time")

	// ErrDuplicateActiveBooking возвращается, когда у клиента уже есть активная запись
	ErrDuplicateActiveBooking = errors.New("client already has an active booking")

	// ErrSlotConflict возвращается, когда слот уже занят другой записью
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
