package mailer

import "errors"

var (
	// ErrInvalidInput возвращается при пустом адресате или теле письма
	ErrInvalidInput = errors.New("mailer: invalid input")

	// ErrSendFailed возвращается, когда SMTP отправка не удалась
	ErrSendFailed = errors.New("mailer: failed to send email")
)
