package usecases

import (
	"context"
	"fmt"
	"time"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/logger"
)

// ProcessRenewalsCommand carries the reference date for a renewal run.
// A zero ReferenceDate means "now".
type ProcessRenewalsCommand struct {
	ReferenceDate time.Time
}

// ProcessRenewalsResult reports what a renewal run did.
type ProcessRenewalsResult struct {
	Activated int
	Renewed   int
	Skipped   int
}

// Updated returns the total number of persisted mutations.
func (r ProcessRenewalsResult) Updated() int {
	return r.Activated + r.Renewed
}

// ProcessRenewalsUseCase advances due subscriptions: trials past their end
// date are promoted to active, active subscriptions past their billing date
// are rolled into the next cycle. All mutations persist in one atomic batch.
type ProcessRenewalsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewProcessRenewalsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ProcessRenewalsUseCase {
	return &ProcessRenewalsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute runs one renewal pass. Re-running with the same reference date
// after a successful commit is a no-op: renewed subscriptions are no longer
// due for that date.
func (uc *ProcessRenewalsUseCase) Execute(ctx context.Context, cmd ProcessRenewalsCommand) (ProcessRenewalsResult, error) {
	referenceDate := cmd.ReferenceDate
	if referenceDate.IsZero() {
		referenceDate = time.Now().UTC()
	}

	var result ProcessRenewalsResult

	dueSubs, err := uc.subscriptionRepo.FindDueForRenewal(ctx, referenceDate)
	if err != nil {
		uc.logger.Errorw("failed to find due subscriptions", "error", err, "reference_date", referenceDate)
		return result, fmt.Errorf("failed to find due subscriptions: %w", err)
	}

	updated := make([]*subscription.Subscription, 0, len(dueSubs))
	for _, sub := range dueSubs {
		switch {
		case sub.IsTrial() && sub.CanActivateFromTrial(referenceDate):
			if err := sub.ActivateFromTrial(referenceDate); err != nil {
				uc.logger.Warnw("failed to activate trial subscription",
					"subscription_id", sub.ID(),
					"error", err,
				)
				result.Skipped++
				continue
			}
			updated = append(updated, sub)
			result.Activated++

		case sub.IsTrial():
			// Trial not yet eligible; the coarse query can overshoot.
			result.Skipped++

		case sub.IsActive():
			if err := sub.Renew(referenceDate); err != nil {
				uc.logger.Warnw("failed to renew subscription",
					"subscription_id", sub.ID(),
					"error", err,
				)
				result.Skipped++
				continue
			}
			updated = append(updated, sub)
			result.Renewed++

		default:
			result.Skipped++
		}
	}

	// The batch write runs even when empty so every pass exercises the same
	// store path.
	if err := uc.subscriptionRepo.UpdateMany(ctx, updated); err != nil {
		uc.logger.Errorw("failed to persist renewal batch", "error", err, "batch_size", len(updated))
		return ProcessRenewalsResult{}, fmt.Errorf("failed to persist renewal batch: %w", err)
	}

	uc.logger.Infow("renewal run completed",
		"reference_date", referenceDate,
		"activated", result.Activated,
		"renewed", result.Renewed,
		"skipped", result.Skipped,
	)

	return result, nil
}
