package usecases

import (
	"context"
	"time"
)

// NotificationSender delivers renewal reminders. Implementations report
// delivery failure through the returned error; the notify use case logs it
// and continues, it never propagates a send failure.
type NotificationSender interface {
	NotifyRenewal(ctx context.Context, email string, subscriptionNames []string, nextBillingDate time.Time, reference time.Time) error
}
