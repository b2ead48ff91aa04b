package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySubscriptions_GroupsByUserAndSendsOnce(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")

	dueDate := date(2024, 2, 8)
	subA := repo.add(activeSub(t, 1, "Netflix", dueDate))
	subB := repo.add(activeSub(t, 1, "Spotify", dueDate))

	sender := &fakeSender{}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 10, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 1, result.NotificationsSent)
	assert.Equal(t, 2, result.SubscriptionsNotified)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@example.com", sender.sent[0].Email)
	assert.Equal(t, []string{"Netflix", "Spotify"}, sender.sent[0].Names)
	assert.True(t, sender.sent[0].NextBillingDate.Equal(dueDate))

	require.NotNil(t, subA.RenewalNotifiedAt())
	require.NotNil(t, subB.RenewalNotifiedAt())
	assert.True(t, subA.RenewalNotifiedAt().Equal(date(2024, 2, 1)))
}

func TestNotifySubscriptions_MissingUserSkipsGroupOnly(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")

	known := repo.add(activeSub(t, 1, "Netflix", date(2024, 2, 8)))
	orphan := repo.add(activeSub(t, 2, "Spotify", date(2024, 2, 8)))

	sender := &fakeSender{}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 10, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 1, result.NotificationsSent)
	assert.Equal(t, 1, result.UsersSkipped)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@example.com", sender.sent[0].Email)

	assert.NotNil(t, known.RenewalNotifiedAt())
	assert.Nil(t, orphan.RenewalNotifiedAt())

	// the batch write carries only the notified group
	require.Len(t, repo.updateRuns, 1)
	require.Len(t, repo.updateRuns[0], 1)
	assert.Equal(t, known.ID(), repo.updateRuns[0][0].ID())
}

func TestNotifySubscriptions_SendFailureStillMarksNotified(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")
	sub := repo.add(activeSub(t, 1, "Netflix", date(2024, 2, 8)))

	sender := &fakeSender{sendErr: errors.New("smtp refused")}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 10, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 0, result.NotificationsSent)
	assert.Equal(t, 1, result.SubscriptionsNotified)
	assert.NotNil(t, sub.RenewalNotifiedAt())
}

func TestNotifySubscriptions_OutsideWindowExcluded(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")
	repo.add(activeSub(t, 1, "Netflix", date(2024, 3, 1)))

	sender := &fakeSender{}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 10, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 0, result.NotificationsSent)
	assert.Empty(t, sender.sent)
}

func TestNotifySubscriptions_AlreadyNotifiedExcludedUntilRenew(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")
	sub := repo.add(activeSub(t, 1, "Netflix", date(2024, 2, 8)))
	sub.MarkNotified(date(2024, 1, 30))

	sender := &fakeSender{}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 10, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 0, result.SubscriptionsNotified)

	require.NoError(t, sub.Renew(date(2024, 2, 8)))
	result, err = uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 3, 1)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SubscriptionsNotified)
}

func TestNotifySubscriptions_DefaultDaysBeforeApplied(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	users.addUser(1, "ana@example.com", "Ana")
	repo.add(activeSub(t, 1, "Netflix", date(2024, 2, 4)))

	sender := &fakeSender{}
	uc := NewNotifySubscriptionsUseCase(repo, users, sender, 3, testLogger())

	result, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: date(2024, 2, 1)})

	require.NoError(t, err)
	assert.Equal(t, 1, result.NotificationsSent)
}

func TestNotifySubscriptions_StoreFailurePropagates(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.findErr = errors.New("connection lost")
	uc := NewNotifySubscriptionsUseCase(repo, newFakeUserRepo(), &fakeSender{}, 10, testLogger())

	_, err := uc.Execute(context.Background(), NotifySubscriptionsCommand{Today: time.Now()})

	assert.ErrorContains(t, err, "connection lost")
}
