package subscription

import (
	"fmt"
	"math"
	"strings"
	"time"

	vo "subtrack/internal/domain/subscription/valueobjects"
)

// Subscription represents the subscription aggregate root. It owns the
// billing lifecycle: trial activation, renewal date arithmetic, and the
// per-cycle notification marker.
type Subscription struct {
	id                uint
	userID            uint
	name              string
	price             vo.Money
	billingCycle      vo.BillingCycle
	status            vo.SubscriptionStatus
	startDate         time.Time
	nextBillingDate   time.Time
	lastBillingDate   *time.Time
	renewalNotifiedAt *time.Time
	trialEndsAt       *time.Time
	metadata          map[string]interface{}
	createdAt         time.Time
	updatedAt         time.Time
}

// NewSubscription creates a new subscription. Status starts as trial when
// trialEndsAt is set, otherwise active. Initialize must be called once after
// construction to compute the first next billing date.
func NewSubscription(
	userID uint,
	name string,
	price vo.Money,
	billingCycle vo.BillingCycle,
	startDate time.Time,
	trialEndsAt *time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !billingCycle.IsValid() {
		return nil, vo.ErrInvalidBillingCycle
	}
	if trialEndsAt != nil && trialEndsAt.Before(startDate) {
		return nil, ErrInvalidTrialPeriod
	}

	status := vo.StatusActive
	if trialEndsAt != nil {
		status = vo.StatusTrial
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:       userID,
		name:         strings.TrimSpace(name),
		price:        price,
		billingCycle: billingCycle,
		status:       status,
		startDate:    startDate,
		trialEndsAt:  trialEndsAt,
		metadata:     make(map[string]interface{}),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the domain.
type SubscriptionReconstructParams struct {
	ID                uint
	UserID            uint
	Name              string
	Price             vo.Money
	BillingCycle      vo.BillingCycle
	Status            vo.SubscriptionStatus
	StartDate         time.Time
	NextBillingDate   time.Time
	LastBillingDate   *time.Time
	RenewalNotifiedAt *time.Time
	TrialEndsAt       *time.Time
	Metadata          map[string]interface{}
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if p.Status == vo.StatusTrial && p.TrialEndsAt == nil {
		return nil, ErrTrialEndMissing
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:                p.ID,
		userID:            p.UserID,
		name:              p.Name,
		price:             p.Price,
		billingCycle:      p.BillingCycle,
		status:            p.Status,
		startDate:         p.StartDate,
		nextBillingDate:   p.NextBillingDate,
		lastBillingDate:   p.LastBillingDate,
		renewalNotifiedAt: p.RenewalNotifiedAt,
		trialEndsAt:       p.TrialEndsAt,
		metadata:          metadata,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning user's ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// Name returns the subscription name
func (s *Subscription) Name() string {
	return s.name
}

// Price returns the subscription price
func (s *Subscription) Price() vo.Money {
	return s.price
}

// Currency returns the price currency
func (s *Subscription) Currency() vo.Currency {
	return s.price.Currency()
}

// BillingCycle returns the billing cycle
func (s *Subscription) BillingCycle() vo.BillingCycle {
	return s.billingCycle
}

// Status returns the subscription status
func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

// StartDate returns the subscription start date
func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

// NextBillingDate returns the next date a renewal action is due
func (s *Subscription) NextBillingDate() time.Time {
	return s.nextBillingDate
}

// LastBillingDate returns the previous due date that was charged, if any
func (s *Subscription) LastBillingDate() *time.Time {
	return s.lastBillingDate
}

// RenewalNotifiedAt returns when the current cycle's reminder was sent, if at all
func (s *Subscription) RenewalNotifiedAt() *time.Time {
	return s.renewalNotifiedAt
}

// TrialEndsAt returns the trial end date, if the subscription is trialing
func (s *Subscription) TrialEndsAt() *time.Time {
	return s.trialEndsAt
}

// Metadata returns the subscription metadata
func (s *Subscription) Metadata() map[string]interface{} {
	return s.metadata
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActive reports whether the subscription is active
func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// IsTrial reports whether the subscription is trialing
func (s *Subscription) IsTrial() bool {
	return s.status == vo.StatusTrial
}

// IsCanceled reports whether the subscription is canceled
func (s *Subscription) IsCanceled() bool {
	return s.status == vo.StatusCanceled
}

// Initialize computes the first next billing date. Called once at creation:
// trial subscriptions bill one cycle after the trial ends, everything else
// bills one cycle after the start date and is forced active.
func (s *Subscription) Initialize() {
	if s.IsTrial() && s.trialEndsAt != nil {
		s.nextBillingDate = s.billingCycle.NextDate(*s.trialEndsAt)
		return
	}

	s.status = vo.StatusActive
	s.nextBillingDate = s.billingCycle.NextDate(s.startDate)
}

// CanActivateFromTrial reports whether the trial has ended as of today.
// The boundary is inclusive: a trial ending exactly today is activatable.
func (s *Subscription) CanActivateFromTrial(today time.Time) bool {
	if !s.IsTrial() || s.trialEndsAt == nil {
		return false
	}
	return !s.trialEndsAt.After(today)
}

// ActivateFromTrial promotes a finished trial to active. The guard lives in
// the method itself so a premature call cannot corrupt the aggregate.
func (s *Subscription) ActivateFromTrial(today time.Time) error {
	if !s.IsTrial() {
		return fmt.Errorf("cannot activate from trial with status %s", s.status)
	}
	if !s.CanActivateFromTrial(today) {
		return ErrTrialNotEnded
	}

	s.status = vo.StatusActive
	s.nextBillingDate = s.billingCycle.NextDate(*s.trialEndsAt)
	s.trialEndsAt = nil
	s.renewalNotifiedAt = nil
	s.updatedAt = today
	return nil
}

// Renew advances the billing period. Safe no-op on non-active subscriptions.
// The next billing date chains from the previous due date rather than from
// now, so a late job run does not drift the schedule.
func (s *Subscription) Renew(now time.Time) error {
	if !s.IsActive() {
		return nil
	}

	previousDue := s.nextBillingDate
	s.lastBillingDate = &previousDue
	s.nextBillingDate = s.billingCycle.NextDate(previousDue)
	s.renewalNotifiedAt = nil
	s.updatedAt = now
	return nil
}

// Cancel moves the subscription to the terminal status. Idempotent.
func (s *Subscription) Cancel(now time.Time) error {
	if s.IsCanceled() {
		return nil
	}

	s.status = vo.StatusCanceled
	s.updatedAt = now
	return nil
}

// ShouldNotify reports whether a renewal reminder is due. Fractional days
// round up, so a renewal 9.1 days out counts as 10 days away. A subscription
// already notified this cycle is excluded until Renew clears the marker.
func (s *Subscription) ShouldNotify(daysBefore int, today time.Time) bool {
	if s.IsCanceled() {
		return false
	}
	if s.renewalNotifiedAt != nil {
		return false
	}

	days := int(math.Ceil(s.nextBillingDate.Sub(today).Hours() / 24))
	return days >= 0 && days <= daysBefore
}

// MarkNotified records that the current cycle's reminder was sent.
func (s *Subscription) MarkNotified(today time.Time) {
	notifiedAt := today
	s.renewalNotifiedAt = &notifiedAt
	s.updatedAt = today
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(s.name) == "" {
		return ErrInvalidName
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if !s.billingCycle.IsValid() {
		return vo.ErrInvalidBillingCycle
	}
	if s.IsTrial() && s.trialEndsAt == nil {
		return ErrTrialEndMissing
	}
	return nil
}
