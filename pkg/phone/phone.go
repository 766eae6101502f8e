// Package phone нормализует телефонные номера лидов в формат E.164.
// Повторяет контракт libphonenumber: сырой ввод + страна-подсказка →
// каноничный номер или ошибка валидации
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultCountry страна по умолчанию для номеров без международного префикса
const DefaultCountry = "GB"

var (
	// ErrMissingPhone возвращается, когда номер не указан
	ErrMissingPhone = errors.New("phone: missing phone number")

	// ErrInvalidPhone возвращается, когда номер не проходит валидацию
	ErrInvalidPhone = errors.New("phone: invalid phone number")

	// ErrUnknownCountry возвращается при неизвестном коде страны
	ErrUnknownCountry = errors.New("phone: unknown country code")
)

// Normalizer нормализатор номеров с настраиваемой страной по умолчанию
type Normalizer struct {
	defaultCountry string
}

// NewNormalizer создает нормализатор
// Если defaultCountry пустая, используется GB
func NewNormalizer(defaultCountry string) *Normalizer {
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}
	return &Normalizer{defaultCountry: strings.ToUpper(defaultCountry)}
}

// Normalize приводит сырой номер к E.164.
// Возвращает каноничный номер и фактический код страны номера
func (n *Normalizer) Normalize(raw string, country string) (string, string, error) {
	code := strings.ToUpper(strings.TrimSpace(country))
	if code == "" {
		code = n.defaultCountry
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", ErrMissingPhone
	}

	prepared := prepare(trimmed, code)

	parsed, err := phonenumbers.Parse(prepared, code)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", "", ErrInvalidPhone
	}

	e164 := phonenumbers.Format(parsed, phonenumbers.E164)

	// Страховка от экзотических номеров: E.164 допускает до 15 цифр
	if digits := len(strings.TrimPrefix(e164, "+")); digits < 8 || digits > 15 {
		return "", "", fmt.Errorf("%w: length out of range", ErrInvalidPhone)
	}

	region := phonenumbers.GetRegionCodeForNumber(parsed)
	if region == "" {
		region = code
	}

	return e164, region, nil
}

// prepare убирает разделители и приводит префиксы к международному виду
func prepare(value, code string) string {
	replacer := strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
	prepared := replacer.Replace(value)

	if strings.HasPrefix(prepared, "00") {
		return "+" + prepared[2:]
	}

	if strings.HasPrefix(prepared, "+") {
		return prepared
	}

	// Британские номера часто вводят в национальном формате (07...)
	if strings.HasPrefix(prepared, "0") && code == "GB" {
		return "+44" + prepared[1:]
	}

	if dial := phonenumbers.GetCountryCodeForRegion(code); dial > 0 {
		return fmt.Sprintf("+%d%s", dial, strings.TrimLeft(prepared, "0"))
	}

	return prepared
}
