package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/email"
	"subtrack/internal/infrastructure/repository"
	"subtrack/internal/interfaces/http/handlers"
	"subtrack/internal/interfaces/http/middleware"
	"subtrack/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	userHandler         *handlers.UserHandler
	subscriptionHandler *handlers.SubscriptionHandler
	scheduledHandler    *handlers.ScheduledHandler
}

// NewRouter wires repositories, use cases, and handlers onto a gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config) *Router {
	log := logger.NewLogger()

	subscriptionRepo := repository.NewSubscriptionRepository(db, log.Named("subscription_repo"))
	userRepo := repository.NewUserRepository(db, log.Named("user_repo"))

	sender := email.NewSMTPNotificationService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, log.Named("email"))

	createUC := usecases.NewCreateSubscriptionUseCase(subscriptionRepo, userRepo, log.Named("create_subscription"))
	bulkCreateUC := usecases.NewBulkCreateSubscriptionsUseCase(subscriptionRepo, userRepo, log.Named("bulk_create_subscriptions"))
	listUC := usecases.NewListSubscriptionsUseCase(subscriptionRepo, log.Named("list_subscriptions"))
	processRenewalsUC := usecases.NewProcessRenewalsUseCase(subscriptionRepo, log.Named("process_renewals"))
	notifyUC := usecases.NewNotifySubscriptionsUseCase(
		subscriptionRepo,
		userRepo,
		sender,
		cfg.Subscription.DaysBefore,
		log.Named("notify_subscriptions"),
	)

	return &Router{
		engine:              gin.New(),
		userHandler:         handlers.NewUserHandler(userRepo, log.Named("user_handler")),
		subscriptionHandler: handlers.NewSubscriptionHandler(createUC, bulkCreateUC, listUC, log.Named("subscription_handler")),
		scheduledHandler:    handlers.NewScheduledHandler(processRenewalsUC, notifyUC, log.Named("scheduled_handler")),
	}
}

// Setup configures middleware and routes, returning the engine ready to run.
func (r *Router) Setup(cfg *config.Config) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(logger.NewLogger()))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", r.userHandler.CreateUser)
			users.GET("/:id", r.userHandler.GetUser)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("", r.subscriptionHandler.CreateSubscription)
			subscriptions.POST("/bulk", r.subscriptionHandler.BulkCreateSubscriptions)
			subscriptions.GET("", r.subscriptionHandler.ListSubscriptions)
		}

		scheduled := api.Group("/scheduled")
		{
			scheduled.POST("/process-renewals", r.scheduledHandler.ProcessRenewals)
			scheduled.POST("/notify-renewals", r.scheduledHandler.NotifyRenewals)
		}
	}

	return r.engine
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
