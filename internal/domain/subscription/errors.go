package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidName          = errors.New("subscription name cannot be empty")
	ErrInvalidTrialPeriod   = errors.New("trial end date cannot be before start date")
	ErrTrialEndMissing      = errors.New("trial subscription requires a trial end date")
	ErrTrialNotEnded        = errors.New("trial period has not ended yet")
)
