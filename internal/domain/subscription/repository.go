package subscription

import (
	"context"
	"time"
)

// SubscriptionRepository is the store contract consumed by the renewal and
// notification use cases. UpdateMany is an atomic batch: either every
// subscription in the slice is persisted or none is.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	// CreateMany persists a batch of new subscriptions in one transaction.
	CreateMany(ctx context.Context, subscriptions []*Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByUserID(ctx context.Context, userID uint) ([]*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error
	// UpdateMany persists a batch of mutated subscriptions atomically.
	// An empty batch is a no-op.
	UpdateMany(ctx context.Context, subscriptions []*Subscription) error

	// FindDueForRenewal returns active subscriptions whose next billing date
	// has arrived and trial subscriptions whose trial has ended, both
	// relative to referenceDate (inclusive).
	FindDueForRenewal(ctx context.Context, referenceDate time.Time) ([]*Subscription, error)

	// FindSubscriptionsToNotify returns the coarse candidate set for renewal
	// reminders: active, not yet notified this cycle, next billing date
	// within daysBefore days. The domain's ShouldNotify is the precise filter.
	FindSubscriptionsToNotify(ctx context.Context, daysBefore int) ([]*Subscription, error)

	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// SubscriptionFilter represents filtering and pagination options for listing
type SubscriptionFilter struct {
	UserID   *uint
	Status   *string
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
}
