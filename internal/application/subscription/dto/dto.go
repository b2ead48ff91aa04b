package dto

import "time"

// SubscriptionDTO is the transport-facing view of a subscription.
type SubscriptionDTO struct {
	ID                uint                   `json:"id"`
	UserID            uint                   `json:"user_id"`
	Name              string                 `json:"name"`
	Price             float64                `json:"price"`
	Currency          string                 `json:"currency"`
	BillingCycle      string                 `json:"billing_cycle"`
	Status            string                 `json:"status"`
	StartDate         time.Time              `json:"start_date"`
	NextBillingDate   time.Time              `json:"next_billing_date"`
	LastBillingDate   *time.Time             `json:"last_billing_date,omitempty"`
	RenewalNotifiedAt *time.Time             `json:"renewal_notified_at,omitempty"`
	TrialEndsAt       *time.Time             `json:"trial_ends_at,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// RenewalRunDTO reports the outcome of a renewal pass.
type RenewalRunDTO struct {
	Activated int `json:"activated"`
	Renewed   int `json:"renewed"`
	Skipped   int `json:"skipped"`
}

// NotificationRunDTO reports the outcome of a reminder pass.
type NotificationRunDTO struct {
	NotificationsSent     int `json:"notifications_sent"`
	UsersSkipped          int `json:"users_skipped"`
	SubscriptionsNotified int `json:"subscriptions_notified"`
}

// BulkCreateResultDTO reports a bulk creation.
type BulkCreateResultDTO struct {
	Created int    `json:"created"`
	IDs     []uint `json:"ids"`
}
