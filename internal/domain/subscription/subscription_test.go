package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "subtrack/internal/domain/subscription/valueobjects"
)

// --- helpers ---

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func newMoney(t *testing.T, amount float64) vo.Money {
	t.Helper()
	m, err := vo.NewMoney(amount, vo.CurrencyBRL)
	require.NoError(t, err)
	return m
}

func newActiveSubscription(t *testing.T, nextBillingDate time.Time) *Subscription {
	t.Helper()
	sub, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:              1,
		UserID:          10,
		Name:            "Netflix",
		Price:           newMoney(t, 39.90),
		BillingCycle:    vo.BillingCycleMonthly,
		Status:          vo.StatusActive,
		StartDate:       nextBillingDate.AddDate(0, -1, 0),
		NextBillingDate: nextBillingDate,
		CreatedAt:       nextBillingDate.AddDate(0, -1, 0),
		UpdatedAt:       nextBillingDate.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	return sub
}

func newTrialSubscription(t *testing.T, trialEndsAt time.Time) *Subscription {
	t.Helper()
	sub, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:              2,
		UserID:          10,
		Name:            "Spotify",
		Price:           newMoney(t, 19.90),
		BillingCycle:    vo.BillingCycleMonthly,
		Status:          vo.StatusTrial,
		StartDate:       trialEndsAt.AddDate(0, 0, -14),
		NextBillingDate: trialEndsAt.AddDate(0, 1, 0),
		TrialEndsAt:     &trialEndsAt,
		CreatedAt:       trialEndsAt.AddDate(0, 0, -14),
		UpdatedAt:       trialEndsAt.AddDate(0, 0, -14),
	})
	require.NoError(t, err)
	return sub
}

// --- construction ---

func TestNewSubscription_ValidInput(t *testing.T) {
	start := date(t, "2024-01-15")

	sub, err := NewSubscription(10, "Netflix", newMoney(t, 39.90), vo.BillingCycleMonthly, start, nil)

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, uint(10), sub.UserID())
	assert.Equal(t, "Netflix", sub.Name())
	assert.Nil(t, sub.LastBillingDate())
	assert.Nil(t, sub.RenewalNotifiedAt())
}

func TestNewSubscription_TrialStartsInTrialStatus(t *testing.T) {
	start := date(t, "2024-01-15")
	trialEnd := date(t, "2024-02-01")

	sub, err := NewSubscription(10, "Spotify", newMoney(t, 19.90), vo.BillingCycleMonthly, start, &trialEnd)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusTrial, sub.Status())
	require.NotNil(t, sub.TrialEndsAt())
	assert.Equal(t, trialEnd, *sub.TrialEndsAt())
}

func TestNewSubscription_ZeroUserID(t *testing.T) {
	sub, err := NewSubscription(0, "Netflix", newMoney(t, 39.90), vo.BillingCycleMonthly, date(t, "2024-01-15"), nil)

	assert.Error(t, err)
	assert.Nil(t, sub)
}

func TestNewSubscription_EmptyName(t *testing.T) {
	sub, err := NewSubscription(10, "   ", newMoney(t, 39.90), vo.BillingCycleMonthly, date(t, "2024-01-15"), nil)

	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Nil(t, sub)
}

func TestNewSubscription_TrialEndBeforeStart(t *testing.T) {
	start := date(t, "2024-02-15")
	trialEnd := date(t, "2024-02-01")

	sub, err := NewSubscription(10, "Spotify", newMoney(t, 19.90), vo.BillingCycleMonthly, start, &trialEnd)

	assert.ErrorIs(t, err, ErrInvalidTrialPeriod)
	assert.Nil(t, sub)
}

func TestReconstructSubscription_TrialWithoutEndDate(t *testing.T) {
	_, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:           1,
		UserID:       10,
		Name:         "Spotify",
		Price:        newMoney(t, 19.90),
		BillingCycle: vo.BillingCycleMonthly,
		Status:       vo.StatusTrial,
		StartDate:    date(t, "2024-01-01"),
	})

	assert.ErrorIs(t, err, ErrTrialEndMissing)
}

// --- Initialize ---

func TestInitialize_NonTrialBillsOneCycleAfterStart(t *testing.T) {
	start := date(t, "2024-01-15")
	sub, err := NewSubscription(10, "Netflix", newMoney(t, 39.90), vo.BillingCycleMonthly, start, nil)
	require.NoError(t, err)

	sub.Initialize()

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, date(t, "2024-02-15"), sub.NextBillingDate())
}

func TestInitialize_TrialBillsOneCycleAfterTrialEnd(t *testing.T) {
	start := date(t, "2024-01-15")
	trialEnd := date(t, "2024-02-01")
	sub, err := NewSubscription(10, "Spotify", newMoney(t, 19.90), vo.BillingCycleMonthly, start, &trialEnd)
	require.NoError(t, err)

	sub.Initialize()

	assert.Equal(t, vo.StatusTrial, sub.Status())
	assert.Equal(t, date(t, "2024-03-01"), sub.NextBillingDate())
}

// --- Renew ---

func TestRenew_ChainsFromDueDateNotWallClock(t *testing.T) {
	sub := newActiveSubscription(t, date(t, "2024-02-01"))

	// The job runs late; renewal must still chain from the due date.
	require.NoError(t, sub.Renew(date(t, "2024-02-05")))

	require.NotNil(t, sub.LastBillingDate())
	assert.Equal(t, date(t, "2024-02-01"), *sub.LastBillingDate())
	assert.Equal(t, date(t, "2024-03-01"), sub.NextBillingDate())
}

func TestRenew_ClearsNotificationMarker(t *testing.T) {
	sub := newActiveSubscription(t, date(t, "2024-02-01"))
	sub.MarkNotified(date(t, "2024-01-25"))
	require.NotNil(t, sub.RenewalNotifiedAt())

	require.NoError(t, sub.Renew(date(t, "2024-02-01")))

	assert.Nil(t, sub.RenewalNotifiedAt())
}

func TestRenew_NoOpWhenTrial(t *testing.T) {
	sub := newTrialSubscription(t, date(t, "2024-02-01"))
	before := sub.NextBillingDate()

	require.NoError(t, sub.Renew(date(t, "2024-02-01")))

	assert.Equal(t, before, sub.NextBillingDate())
	assert.Nil(t, sub.LastBillingDate())
}

func TestRenew_NoOpWhenCanceled(t *testing.T) {
	sub := newActiveSubscription(t, date(t, "2024-02-01"))
	require.NoError(t, sub.Cancel(date(t, "2024-01-20")))
	before := sub.NextBillingDate()

	require.NoError(t, sub.Renew(date(t, "2024-02-01")))

	assert.Equal(t, before, sub.NextBillingDate())
}

// --- trial activation ---

func TestCanActivateFromTrial_InclusiveBoundary(t *testing.T) {
	sub := newTrialSubscription(t, date(t, "2024-02-01"))

	assert.False(t, sub.CanActivateFromTrial(date(t, "2024-01-31")))
	assert.True(t, sub.CanActivateFromTrial(date(t, "2024-02-01")))
	assert.True(t, sub.CanActivateFromTrial(date(t, "2024-02-02")))
}

func TestActivateFromTrial_Promotes(t *testing.T) {
	sub := newTrialSubscription(t, date(t, "2024-02-01"))
	sub.MarkNotified(date(t, "2024-01-25"))

	require.NoError(t, sub.ActivateFromTrial(date(t, "2024-02-01")))

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, date(t, "2024-03-01"), sub.NextBillingDate())
	assert.Nil(t, sub.TrialEndsAt())
	assert.Nil(t, sub.RenewalNotifiedAt())
}

func TestActivateFromTrial_BeforeTrialEnd(t *testing.T) {
	sub := newTrialSubscription(t, date(t, "2024-02-01"))

	err := sub.ActivateFromTrial(date(t, "2024-01-15"))

	assert.ErrorIs(t, err, ErrTrialNotEnded)
	assert.Equal(t, vo.StatusTrial, sub.Status())
}

func TestActivateFromTrial_NotTrial(t *testing.T) {
	sub := newActiveSubscription(t, date(t, "2024-02-01"))

	err := sub.ActivateFromTrial(date(t, "2024-02-01"))

	assert.Error(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

// --- ShouldNotify ---

func TestShouldNotify_CeilingRoundsFractionalDaysUp(t *testing.T) {
	today := date(t, "2024-01-01")
	// Due 9.1 days out: counts as 10 days away.
	sub := newActiveSubscription(t, today.Add(9*24*time.Hour+2*time.Hour+24*time.Minute))

	assert.True(t, sub.ShouldNotify(10, today))
	assert.False(t, sub.ShouldNotify(9, today))
}

func TestShouldNotify_DueToday(t *testing.T) {
	today := date(t, "2024-02-01")
	sub := newActiveSubscription(t, today)

	assert.True(t, sub.ShouldNotify(10, today))
	assert.True(t, sub.ShouldNotify(0, today))
}

func TestShouldNotify_PastDue(t *testing.T) {
	today := date(t, "2024-02-05")
	sub := newActiveSubscription(t, date(t, "2024-02-01"))

	assert.False(t, sub.ShouldNotify(10, today))
}

func TestShouldNotify_AlreadyNotified(t *testing.T) {
	today := date(t, "2024-01-25")
	sub := newActiveSubscription(t, date(t, "2024-02-01"))
	sub.MarkNotified(today)

	assert.False(t, sub.ShouldNotify(10, today))
}

func TestShouldNotify_Canceled(t *testing.T) {
	today := date(t, "2024-01-25")
	sub := newActiveSubscription(t, date(t, "2024-02-01"))
	require.NoError(t, sub.Cancel(today))

	assert.False(t, sub.ShouldNotify(10, today))
}

func TestShouldNotify_AtMostOncePerCycle(t *testing.T) {
	today := date(t, "2024-01-25")
	sub := newActiveSubscription(t, date(t, "2024-02-01"))

	require.True(t, sub.ShouldNotify(10, today))
	sub.MarkNotified(today)
	require.False(t, sub.ShouldNotify(10, today))

	// Renewal opens the next cycle's notification opportunity.
	require.NoError(t, sub.Renew(date(t, "2024-02-01")))
	assert.True(t, sub.ShouldNotify(30, date(t, "2024-02-02")))
}

// --- Cancel ---

func TestCancel_Idempotent(t *testing.T) {
	sub := newActiveSubscription(t, date(t, "2024-02-01"))

	require.NoError(t, sub.Cancel(date(t, "2024-01-20")))
	require.NoError(t, sub.Cancel(date(t, "2024-01-21")))

	assert.Equal(t, vo.StatusCanceled, sub.Status())
}
