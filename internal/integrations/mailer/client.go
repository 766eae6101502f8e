package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client SMTP клиент для отправки писем
type Client struct {
	dialer    *gomail.Dialer
	fromName  string
	fromEmail string
	log       Logger
}

// NewClient создает новый экземпляр SMTP клиента
func NewClient(host string, port int, user, password, fromName, fromEmail string, log Logger) *Client {
	return &Client{
		dialer:    gomail.NewDialer(host, port, user, password),
		fromName:  fromName,
		fromEmail: fromEmail,
		log:       log,
	}
}

// Send отправляет текстовое письмо
func (c *Client) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.fromEmail, c.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		c.log.Error("Send: smtp delivery to %s failed: %v", to, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("Send: email delivered to %s, subject=%q", to, subject)
	return nil
}
