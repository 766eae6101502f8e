package smsgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	messagesEndpoint = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"
	maxAttempts      = 3
	retryDelay       = 2 * time.Second
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Twilio REST API для отправки SMS
type Client struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр SMS клиента
func NewClient(accountSID, authToken, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет SMS на номер в формате E.164
// Временные сбои (сеть, 5xx, 429) повторяются до maxAttempts раз
func (c *Client) Send(ctx context.Context, to, body string) error {
	if c.accountSID == "" || c.authToken == "" || c.from == "" {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	payload := url.Values{}
	payload.Set("To", to)
	payload.Set("From", c.from)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf(messagesEndpoint, c.accountSID)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = c.post(ctx, endpoint, payload)
		if lastErr == nil {
			c.log.Info("Send: sms delivered to %s", to)
			return nil
		}

		// 4xx кроме rate limit не лечится повтором
		var terminal *terminalError
		if errors.As(lastErr, &terminal) {
			break
		}

		if attempt < maxAttempts {
			c.log.Warn("Send: attempt %d/%d to %s failed: %v", attempt, maxAttempts, to, lastErr)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrSendFailed, ctx.Err())
			case <-time.After(retryDelay):
			}
		}
	}

	c.log.Error("Send: sms to %s failed: %v", to, lastErr)
	return fmt.Errorf("%w: %v", ErrSendFailed, lastErr)
}

// post выполняет один запрос к Twilio
func (c *Client) post(ctx context.Context, endpoint string, payload url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return &terminalError{err: err}
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := fmt.Errorf("status %d: %s", resp.StatusCode, twilioErrorMessage(respBody))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return &terminalError{err: apiErr}
	}
	return apiErr
}

// twilioErrorMessage извлекает message из тела ошибки Twilio
func twilioErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}

// terminalError ошибка, которую не имеет смысла повторять
type terminalError struct {
	err error
}

func (e *terminalError) Error() string {
	return e.err.Error()
}

func (e *terminalError) Unwrap() error {
	return e.err
}
