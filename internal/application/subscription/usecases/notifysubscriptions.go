package usecases

import (
	"context"
	"fmt"
	"time"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/domain/user"
	"subtrack/internal/shared/logger"
)

// NotifySubscriptionsCommand configures a reminder run. DaysBefore <= 0 falls
// back to the configured default; a zero Today means "now".
type NotifySubscriptionsCommand struct {
	DaysBefore int
	Today      time.Time
}

// NotifySubscriptionsResult reports what a reminder run did.
type NotifySubscriptionsResult struct {
	NotificationsSent     int
	UsersSkipped          int
	SubscriptionsNotified int
}

// NotifySubscriptionsUseCase sends one renewal reminder per user covering all
// of that user's subscriptions due within the window, then marks the whole
// set notified in a single batch write.
type NotifySubscriptionsUseCase struct {
	subscriptionRepo  subscription.SubscriptionRepository
	userRepo          user.Repository
	sender            NotificationSender
	defaultDaysBefore int
	logger            logger.Interface
}

func NewNotifySubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	userRepo user.Repository,
	sender NotificationSender,
	defaultDaysBefore int,
	logger logger.Interface,
) *NotifySubscriptionsUseCase {
	return &NotifySubscriptionsUseCase{
		subscriptionRepo:  subscriptionRepo,
		userRepo:          userRepo,
		sender:            sender,
		defaultDaysBefore: defaultDaysBefore,
		logger:            logger,
	}
}

// Execute runs one reminder pass. A missing user or a failed send skips that
// user's group without aborting the run; subscriptions in a group whose send
// was attempted are marked notified regardless of delivery outcome, so a
// persistently failing sender cannot cause a reminder storm.
func (uc *NotifySubscriptionsUseCase) Execute(ctx context.Context, cmd NotifySubscriptionsCommand) (NotifySubscriptionsResult, error) {
	daysBefore := cmd.DaysBefore
	if daysBefore <= 0 {
		daysBefore = uc.defaultDaysBefore
	}
	today := cmd.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}

	var result NotifySubscriptionsResult

	candidates, err := uc.subscriptionRepo.FindSubscriptionsToNotify(ctx, daysBefore)
	if err != nil {
		uc.logger.Errorw("failed to find notification candidates", "error", err, "days_before", daysBefore)
		return result, fmt.Errorf("failed to find notification candidates: %w", err)
	}

	// The store filter is coarse; the aggregate decides inclusion.
	eligible := make([]*subscription.Subscription, 0, len(candidates))
	for _, sub := range candidates {
		if sub.ShouldNotify(daysBefore, today) {
			eligible = append(eligible, sub)
		}
	}

	groups, order := groupByUser(eligible)

	updated := make([]*subscription.Subscription, 0, len(eligible))
	for _, userID := range order {
		group := groups[userID]

		owner, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			uc.logger.Errorw("failed to resolve user for reminder", "error", err, "user_id", userID)
			result.UsersSkipped++
			continue
		}
		if owner == nil {
			uc.logger.Warnw("skipping reminder for unknown user", "user_id", userID)
			result.UsersSkipped++
			continue
		}

		names := make([]string, len(group))
		for i, sub := range group {
			names[i] = sub.Name()
		}
		// All of one user's due subscriptions are assumed to share a billing
		// date; the first one's date drives the message.
		nextBillingDate := group[0].NextBillingDate()

		if err := uc.sender.NotifyRenewal(ctx, owner.Email().String(), names, nextBillingDate, today); err != nil {
			uc.logger.Warnw("renewal reminder delivery failed",
				"user_id", userID,
				"subscription_count", len(group),
				"error", err,
			)
		} else {
			result.NotificationsSent++
		}

		for _, sub := range group {
			sub.MarkNotified(today)
			updated = append(updated, sub)
		}
		result.SubscriptionsNotified += len(group)
	}

	if err := uc.subscriptionRepo.UpdateMany(ctx, updated); err != nil {
		uc.logger.Errorw("failed to persist notification markers", "error", err, "batch_size", len(updated))
		return NotifySubscriptionsResult{}, fmt.Errorf("failed to persist notification markers: %w", err)
	}

	uc.logger.Infow("reminder run completed",
		"days_before", daysBefore,
		"notifications_sent", result.NotificationsSent,
		"users_skipped", result.UsersSkipped,
		"subscriptions_notified", result.SubscriptionsNotified,
	)

	return result, nil
}

// groupByUser buckets subscriptions by owner while preserving the relative
// order they were returned by the store.
func groupByUser(subs []*subscription.Subscription) (map[uint][]*subscription.Subscription, []uint) {
	groups := make(map[uint][]*subscription.Subscription, len(subs))
	order := make([]uint, 0, len(subs))

	for _, sub := range subs {
		if _, seen := groups[sub.UserID()]; !seen {
			order = append(order, sub.UserID())
		}
		groups[sub.UserID()] = append(groups[sub.UserID()], sub)
	}
	return groups, order
}
