package usecases

import (
	"context"
	"fmt"
	"time"

	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/domain/user"
	"subtrack/internal/shared/logger"
)

// CreateSubscriptionCommand carries the input for creating one subscription.
type CreateSubscriptionCommand struct {
	UserID       uint
	Name         string
	Price        float64
	Currency     string
	BillingCycle string
	StartDate    time.Time
	TrialEndsAt  *time.Time
	Metadata     map[string]interface{}
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	userRepo         user.Repository
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	exists, err := uc.userRepo.Exists(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	sub, err := buildSubscription(cmd)
	if err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"user_id", sub.UserID(),
		"status", sub.Status(),
		"next_billing_date", sub.NextBillingDate(),
	)

	return sub, nil
}

// buildSubscription validates the command's value objects, constructs the
// aggregate, and computes its first billing date.
func buildSubscription(cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	currency, err := vo.ParseCurrency(cmd.Currency)
	if err != nil {
		return nil, err
	}
	price, err := vo.NewMoney(cmd.Price, currency)
	if err != nil {
		return nil, err
	}
	cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, err
	}

	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	sub, err := subscription.NewSubscription(cmd.UserID, cmd.Name, price, cycle, startDate, cmd.TrialEndsAt)
	if err != nil {
		return nil, err
	}
	for k, v := range cmd.Metadata {
		sub.Metadata()[k] = v
	}
	sub.Initialize()

	return sub, nil
}
