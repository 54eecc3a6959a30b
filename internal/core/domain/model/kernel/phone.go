package kernel

import (
	"errors"
	"fmt"
	"strings"

	"notifier/internal/pkg/guard"
)

const (
	// DefaultCountryCode is prefixed to normalized phone numbers when no
	// other country code is configured.
	DefaultCountryCode = "+92"

	// phoneSignificantDigits is how many trailing digits of the raw
	// input form the subscriber part of the dispatch address.
	phoneSignificantDigits = 10
)

var (
	// ErrPhoneIsNotConstructed is returned when attempting to use an improperly initialized Phone.
	// Phones must be created via the NewPhone constructor to ensure validity.
	ErrPhoneIsNotConstructed = errors.New("Phone must be created via NewPhone constructor")

	// ErrInvalidPhone is returned when a raw phone string is too short to
	// yield a dispatch address. Callers classify skip decisions with it.
	ErrInvalidPhone = errors.New("phone number is invalid")
)

// Phone is the canonical dispatch address for the messaging channel.
// It is an immutable value object built from a free-form phone string:
// non-digit characters are dropped, the trailing 10 digits are kept, and a
// fixed country code is prefixed. The zero value is invalid; use NewPhone.
//
// Example:
//
//	phone, err := kernel.NewPhone("0300-1234567", kernel.DefaultCountryCode)
//	if err != nil {
//	    // Handle malformed phone
//	}
//	fmt.Println(phone) // Output: +923001234567
type Phone struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewPhone normalizes a raw phone string into a canonical dispatch address.
// Non-digit characters (spaces, dashes, a leading "+") are dropped, the
// trailing 10 digits are kept and prefixed with countryCode
// (DefaultCountryCode when countryCode is empty).
//
// Returns ErrInvalidPhone (wrapped) when the input carries fewer than
// 10 digits. Normalization is pure and deterministic: dispatch correctness
// depends entirely on it.
func NewPhone(raw string, countryCode string) (Phone, error) {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	digits := digitsOf(raw)
	if len(digits) < phoneSignificantDigits {
		return Phone{}, fmt.Errorf("%w: %q has fewer than %d digits",
			ErrInvalidPhone, strings.TrimSpace(raw), phoneSignificantDigits)
	}

	return Phone{
		value: countryCode + digits[len(digits)-phoneSignificantDigits:],
		guard: guard.NewConstructorGuard(),
	}, nil
}

// digitsOf strips everything but ASCII digits from a raw phone string.
func digitsOf(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate ensures the Phone was created through NewPhone.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

// String returns the canonical dispatch address, e.g. "+923001234567".
func (p Phone) String() string {
	return p.value
}

// Digits returns the dispatch address without the leading "+", the form
// expected by the messaging channel's URL scheme.
func (p Phone) Digits() string {
	return strings.TrimPrefix(p.value, "+")
}

// IsEqual compares two phones by canonical value.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}
