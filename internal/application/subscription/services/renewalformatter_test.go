package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormat_SingleSubscription(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	msg := f.Format([]string{"Netflix"}, day(2024, 2, 8), day(2024, 2, 1))

	assert.Equal(t, "renew in 7 days", msg.RenewalMessage)
	assert.Equal(t, "1. Netflix", msg.SubscriptionsList)
	assert.Equal(t, "08/02/2024", msg.FormattedDate)
	assert.Equal(t, "Reminder: Netflix renews in 7 days", msg.Subject)
}

func TestFormat_MultipleSubscriptions(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	msg := f.Format([]string{"Netflix", "Spotify", "iCloud"}, day(2024, 2, 8), day(2024, 2, 1))

	assert.Equal(t, "1. Netflix<br>2. Spotify<br>3. iCloud", msg.SubscriptionsList)
	assert.Equal(t, "Reminder: 3 subscriptions renew in 7 days", msg.Subject)
}

func TestFormat_DueToday(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	msg := f.Format([]string{"Netflix"}, day(2024, 2, 1), day(2024, 2, 1))

	assert.Equal(t, "renew today", msg.RenewalMessage)
	assert.Equal(t, "Reminder: Netflix renews in 0 days", msg.Subject)
}

func TestFormat_OneDaySingular(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	msg := f.Format([]string{"Netflix"}, day(2024, 2, 2), day(2024, 2, 1))

	assert.Equal(t, "renew in 1 day", msg.RenewalMessage)
	assert.Equal(t, "Reminder: Netflix renews in 1 day", msg.Subject)

	msg = f.Format([]string{"Netflix", "Spotify"}, day(2024, 2, 2), day(2024, 2, 1))
	assert.Equal(t, "Reminder: 2 subscriptions renew in 1 day", msg.Subject)
}

func TestFormat_FractionalDaysRoundUp(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	reference := time.Date(2024, 2, 1, 21, 36, 0, 0, time.UTC)
	msg := f.Format([]string{"Netflix"}, day(2024, 2, 11), reference)

	assert.Equal(t, "renew in 10 days", msg.RenewalMessage)
}

func TestFormat_EmptyListYieldsEmptyString(t *testing.T) {
	f := NewRenewalNotificationFormatter()

	msg := f.Format(nil, day(2024, 2, 8), day(2024, 2, 1))

	assert.Equal(t, "", msg.SubscriptionsList)
}
