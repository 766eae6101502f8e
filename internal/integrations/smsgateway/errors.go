package smsgateway

import "errors"

var (
	// ErrInvalidInput возвращается при пустом номере или тексте сообщения
	ErrInvalidInput = errors.New("smsgateway: invalid input")

	// ErrNotConfigured возвращается при отсутствии учетных данных Twilio
	ErrNotConfigured = errors.New("smsgateway: credentials missing")

	// ErrSendFailed возвращается, когда Twilio не принял сообщение
	ErrSendFailed = errors.New("smsgateway: failed to send sms")
)
