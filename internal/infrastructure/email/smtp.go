package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"subtrack/internal/application/subscription/services"
	"subtrack/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPNotificationService delivers renewal reminders over SMTP. It satisfies
// the notify use case's NotificationSender port.
type SMTPNotificationService struct {
	config    SMTPConfig
	dialer    *gomail.Dialer
	formatter *services.RenewalNotificationFormatter
	logger    logger.Interface
}

func NewSMTPNotificationService(config SMTPConfig, logger logger.Interface) *SMTPNotificationService {
	return &SMTPNotificationService{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		formatter: services.NewRenewalNotificationFormatter(),
		logger:    logger,
	}
}

// NotifyRenewal renders and sends one reminder email covering all of the
// recipient's subscriptions due on nextBillingDate.
func (s *SMTPNotificationService) NotifyRenewal(ctx context.Context, to string, subscriptionNames []string, nextBillingDate, reference time.Time) error {
	msg := s.formatter.Format(subscriptionNames, nextBillingDate, reference)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Subscription renewal reminder</h2>
			<p>The following subscriptions %s (%s):</p>
			<p>%s</p>
		</body>
		</html>
	`, msg.RenewalMessage, msg.FormattedDate, msg.SubscriptionsList)

	plainBody := fmt.Sprintf(`
Subscription renewal reminder

The following subscriptions %s (%s):

%s
	`, msg.RenewalMessage, msg.FormattedDate, strings.ReplaceAll(msg.SubscriptionsList, "<br>", "\n"))

	if err := s.sendEmail(to, msg.Subject, htmlBody, plainBody); err != nil {
		return err
	}

	s.logger.Infow("renewal reminder sent", "subscription_count", len(subscriptionNames))
	return nil
}

func (s *SMTPNotificationService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
