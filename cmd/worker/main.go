package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/database"
	"subtrack/internal/infrastructure/email"
	"subtrack/internal/infrastructure/repository"
	"subtrack/internal/infrastructure/scheduler"
	"subtrack/internal/shared/biztime"
	"subtrack/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting renewal worker", "environment", env)

	if err := biztime.Init(cfg.Subscription.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	subscriptionRepo := repository.NewSubscriptionRepository(database.Get(), log.Named("subscription_repo"))
	userRepo := repository.NewUserRepository(database.Get(), log.Named("user_repo"))

	sender := email.NewSMTPNotificationService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, log.Named("email"))

	processRenewalsUC := usecases.NewProcessRenewalsUseCase(subscriptionRepo, log.Named("process_renewals"))
	notifyUC := usecases.NewNotifySubscriptionsUseCase(
		subscriptionRepo,
		userRepo,
		sender,
		cfg.Subscription.DaysBefore,
		log.Named("notify_subscriptions"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renewalScheduler := scheduler.NewRenewalScheduler(
		processRenewalsUC,
		notifyUC,
		time.Duration(cfg.Scheduler.IntervalHours)*time.Hour,
		log.Named("renewal_scheduler"),
	)

	if cfg.Scheduler.Enabled {
		renewalScheduler.Start(ctx)
	} else {
		log.Warnw("scheduler disabled by configuration, worker will idle")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Infow("shutting down renewal worker")
	cancel()
	renewalScheduler.Stop()
	log.Infow("renewal worker stopped")
}
