package valueobjects

import (
	"fmt"
	"strings"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrial    SubscriptionStatus = "trial"
	StatusCanceled SubscriptionStatus = "canceled"
)

// legacyCanceledAlias is the historical spelling of the terminal status still
// present in older exports. ParseStatus normalizes it to StatusCanceled.
const legacyCanceledAlias = "inactive"

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:   true,
	StatusTrial:    true,
	StatusCanceled: true,
}

func ParseStatus(value string) (SubscriptionStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == legacyCanceledAlias {
		return StatusCanceled, nil
	}

	status := SubscriptionStatus(normalized)
	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid subscription status: %s", value)
	}

	return status, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCanceled
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusTrial:    {StatusActive, StatusCanceled},
		StatusActive:   {StatusActive, StatusCanceled},
		StatusCanceled: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}
