package notifications

import "context"

// EmailSender интерфейс SMTP клиента
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender интерфейс SMS шлюза
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
