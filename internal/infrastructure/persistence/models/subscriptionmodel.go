package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"subtrack/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID                uint      `gorm:"primarykey"`
	UserID            uint      `gorm:"not null;index:idx_user_subscription"`
	Name              string    `gorm:"not null;size:255"`
	PriceCents        int64     `gorm:"not null"`
	Currency          string    `gorm:"not null;size:3"`
	BillingCycle      string    `gorm:"not null;size:20"`
	Status            string    `gorm:"not null;size:20;index:idx_status"`
	StartDate         time.Time `gorm:"not null"`
	NextBillingDate   time.Time `gorm:"not null;index:idx_next_billing"`
	LastBillingDate   *time.Time
	RenewalNotifiedAt *time.Time `gorm:"index:idx_renewal_notified"`
	TrialEndsAt       *time.Time `gorm:"index:idx_trial_ends"`
	Metadata          datatypes.JSON
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
