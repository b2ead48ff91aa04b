package dto

import (
	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/domain/subscription"
)

// SubscriptionToDTO converts a subscription aggregate to its DTO.
func SubscriptionToDTO(sub *subscription.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:                sub.ID(),
		UserID:            sub.UserID(),
		Name:              sub.Name(),
		Price:             sub.Price().Amount(),
		Currency:          sub.Price().Currency().String(),
		BillingCycle:      sub.BillingCycle().String(),
		Status:            sub.Status().String(),
		StartDate:         sub.StartDate(),
		NextBillingDate:   sub.NextBillingDate(),
		LastBillingDate:   sub.LastBillingDate(),
		RenewalNotifiedAt: sub.RenewalNotifiedAt(),
		TrialEndsAt:       sub.TrialEndsAt(),
		Metadata:          sub.Metadata(),
		CreatedAt:         sub.CreatedAt(),
		UpdatedAt:         sub.UpdatedAt(),
	}
}

// SubscriptionsToDTO converts a slice of aggregates.
func SubscriptionsToDTO(subs []*subscription.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, len(subs))
	for i, sub := range subs {
		out[i] = SubscriptionToDTO(sub)
	}
	return out
}

// RenewalRunToDTO converts a renewal run result.
func RenewalRunToDTO(result usecases.ProcessRenewalsResult) RenewalRunDTO {
	return RenewalRunDTO{
		Activated: result.Activated,
		Renewed:   result.Renewed,
		Skipped:   result.Skipped,
	}
}

// NotificationRunToDTO converts a reminder run result.
func NotificationRunToDTO(result usecases.NotifySubscriptionsResult) NotificationRunDTO {
	return NotificationRunDTO{
		NotificationsSent:     result.NotificationsSent,
		UsersSkipped:          result.UsersSkipped,
		SubscriptionsNotified: result.SubscriptionsNotified,
	}
}
