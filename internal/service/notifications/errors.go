package notifications

import "errors"

var (
	// ErrNoChannels возвращается, когда ни один канал доставки не настроен
	ErrNoChannels = errors.New("notifications: no delivery channels configured")

	// ErrDeliveryFailed возвращается, когда все каналы доставки отказали
	ErrDeliveryFailed = errors.New("notifications: delivery failed on all channels")
)
