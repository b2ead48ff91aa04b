package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RenewalMessage is the rendered reminder content handed to the sender.
type RenewalMessage struct {
	RenewalMessage    string
	SubscriptionsList string
	FormattedDate     string
	Subject           string
}

// RenewalNotificationFormatter renders renewal reminder text. It is a pure
// service: no stores, no clocks beyond the reference date it is handed.
type RenewalNotificationFormatter struct{}

// NewRenewalNotificationFormatter creates a new formatter.
func NewRenewalNotificationFormatter() *RenewalNotificationFormatter {
	return &RenewalNotificationFormatter{}
}

// Format renders the reminder for one user's group of subscriptions.
// Fractional days between reference and nextBillingDate round up.
func (f *RenewalNotificationFormatter) Format(names []string, nextBillingDate, reference time.Time) RenewalMessage {
	days := daysUntil(nextBillingDate, reference)

	return RenewalMessage{
		RenewalMessage:    renewalMessage(days),
		SubscriptionsList: subscriptionsList(names),
		FormattedDate:     nextBillingDate.Format("02/01/2006"),
		Subject:           subject(names, days),
	}
}

func daysUntil(nextBillingDate, reference time.Time) int {
	return int(math.Ceil(nextBillingDate.Sub(reference).Hours() / 24))
}

func renewalMessage(days int) string {
	switch {
	case days <= 0:
		return "renew today"
	case days == 1:
		return "renew in 1 day"
	default:
		return fmt.Sprintf("renew in %d days", days)
	}
}

func subscriptionsList(names []string) string {
	if len(names) == 0 {
		return ""
	}

	items := make([]string, len(names))
	for i, name := range names {
		items[i] = fmt.Sprintf("%d. %s", i+1, name)
	}
	return strings.Join(items, "<br>")
}

func subject(names []string, days int) string {
	dayWord := "days"
	if days == 1 {
		dayWord = "day"
	}

	if len(names) == 1 {
		return fmt.Sprintf("Reminder: %s renews in %d %s", names[0], days, dayWord)
	}
	return fmt.Sprintf("Reminder: %d subscriptions renew in %d %s", len(names), days, dayWord)
}
