package valueobjects

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("money amount cannot be negative")
	// ErrCurrencyMismatch is returned when arithmetic mixes currencies
	ErrCurrencyMismatch = errors.New("cannot operate on different currencies")
	// ErrInvalidCurrency is returned when currency is not supported
	ErrInvalidCurrency = errors.New("invalid currency")
	// ErrNegativeMultiplier is returned when a multiplier is negative
	ErrNegativeMultiplier = errors.New("multiplier cannot be negative")
)

type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
)

var ValidCurrencies = map[Currency]bool{
	CurrencyBRL: true,
	CurrencyUSD: true,
}

func ParseCurrency(value string) (Currency, error) {
	currency := Currency(value)
	if !ValidCurrencies[currency] {
		return "", fmt.Errorf("%w: %s", ErrInvalidCurrency, value)
	}
	return currency, nil
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	return ValidCurrencies[c]
}

// Money is an immutable amount plus currency. Amounts are stored in cents so
// arithmetic stays exact; construction from a float rounds to 2 decimals.
type Money struct {
	amountInCents int64
	currency      Currency
}

// NewMoney creates a Money from a decimal amount, rounding to 2 fraction
// digits. Negative amounts are rejected.
func NewMoney(amount float64, currency Currency) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}
	return Money{
		amountInCents: int64(math.Round(amount * 100)),
		currency:      currency,
	}, nil
}

// NewMoneyFromCents creates a Money from an exact cent amount.
func NewMoneyFromCents(amountInCents int64, currency Currency) (Money, error) {
	if amountInCents < 0 {
		return Money{}, ErrNegativeAmount
	}
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}
	return Money{amountInCents: amountInCents, currency: currency}, nil
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

// Amount returns the decimal amount (2 fraction digits).
func (m Money) Amount() float64 {
	return float64(m.amountInCents) / 100.0
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

// Add returns the sum of two Money values. Both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{
		amountInCents: m.amountInCents + other.amountInCents,
		currency:      m.currency,
	}, nil
}

// Multiply returns the Money scaled by a non-negative factor, rounded to cents.
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, ErrNegativeMultiplier
	}
	return Money{
		amountInCents: int64(math.Round(float64(m.amountInCents) * factor)),
		currency:      m.currency,
	}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.currency)
}
