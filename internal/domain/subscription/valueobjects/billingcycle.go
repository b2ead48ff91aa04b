package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidBillingCycle is returned when billing cycle is not valid
var ErrInvalidBillingCycle = errors.New("invalid billing cycle")

type BillingCycle string

const (
	BillingCycleWeekly  BillingCycle = "weekly"
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

var ValidBillingCycles = map[BillingCycle]bool{
	BillingCycleWeekly:  true,
	BillingCycleMonthly: true,
	BillingCycleYearly:  true,
}

func NewBillingCycle(value string) (BillingCycle, error) {
	if value == "" {
		return "", fmt.Errorf("%w: billing cycle cannot be empty", ErrInvalidBillingCycle)
	}

	cycle := BillingCycle(value)
	if !ValidBillingCycles[cycle] {
		return "", fmt.Errorf("%w: %s", ErrInvalidBillingCycle, value)
	}

	return cycle, nil
}

// ParseBillingCycle normalizes case and whitespace before validating, for
// values coming from user input.
func ParseBillingCycle(value string) (BillingCycle, error) {
	return NewBillingCycle(strings.ToLower(strings.TrimSpace(value)))
}

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	return ValidBillingCycles[b]
}

// NextDate advances a date by one billing period. Calendar arithmetic uses
// time.AddDate, so adding a month to Jan 31 overflows into March rather than
// clamping to month length.
func (b BillingCycle) NextDate(from time.Time) time.Time {
	switch b {
	case BillingCycleWeekly:
		return from.AddDate(0, 0, 7)
	case BillingCycleMonthly:
		return from.AddDate(0, 1, 0)
	case BillingCycleYearly:
		return from.AddDate(1, 0, 0)
	default:
		return time.Time{}
	}
}

func (b BillingCycle) Equals(other BillingCycle) bool {
	return b == other
}

func (b BillingCycle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *BillingCycle) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	cycle, err := NewBillingCycle(str)
	if err != nil {
		return err
	}

	*b = cycle
	return nil
}
