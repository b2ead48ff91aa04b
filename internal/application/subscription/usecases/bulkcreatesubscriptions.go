package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/domain/user"
	"subtrack/internal/shared/logger"
)

// BulkCreateSubscriptionsCommand creates many subscriptions for one user in a
// single all-or-nothing batch.
type BulkCreateSubscriptionsCommand struct {
	UserID        uint
	Subscriptions []CreateSubscriptionCommand
}

// BulkCreateSubscriptionsResult reports the created batch.
type BulkCreateSubscriptionsResult struct {
	Created int
	IDs     []uint
}

type BulkCreateSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	userRepo         user.Repository
	logger           logger.Interface
}

func NewBulkCreateSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *BulkCreateSubscriptionsUseCase {
	return &BulkCreateSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Execute validates the owner once, builds every aggregate up front, then
// persists them in one transaction. Any invalid entry fails the whole batch
// before anything is written.
func (uc *BulkCreateSubscriptionsUseCase) Execute(ctx context.Context, cmd BulkCreateSubscriptionsCommand) (BulkCreateSubscriptionsResult, error) {
	var result BulkCreateSubscriptionsResult

	if len(cmd.Subscriptions) == 0 {
		return result, fmt.Errorf("subscriptions list is empty")
	}

	exists, err := uc.userRepo.Exists(ctx, cmd.UserID)
	if err != nil {
		return result, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return result, user.ErrUserNotFound
	}

	subs := make([]*subscription.Subscription, 0, len(cmd.Subscriptions))
	for i, entry := range cmd.Subscriptions {
		entry.UserID = cmd.UserID
		sub, err := buildSubscription(entry)
		if err != nil {
			return result, fmt.Errorf("invalid subscription at index %d: %w", i, err)
		}
		subs = append(subs, sub)
	}

	if err := uc.subscriptionRepo.CreateMany(ctx, subs); err != nil {
		uc.logger.Errorw("failed to create subscription batch", "error", err, "user_id", cmd.UserID, "batch_size", len(subs))
		return result, fmt.Errorf("failed to create subscription batch: %w", err)
	}

	result.Created = len(subs)
	result.IDs = make([]uint, len(subs))
	for i, sub := range subs {
		result.IDs[i] = sub.ID()
	}

	uc.logger.Infow("subscription batch created", "user_id", cmd.UserID, "created", result.Created)

	return result, nil
}
