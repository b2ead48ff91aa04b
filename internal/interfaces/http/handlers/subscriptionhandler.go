package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	subdto "subtrack/internal/application/subscription/dto"
	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/domain/user"
	"subtrack/internal/shared/biztime"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// SubscriptionHandler handles subscription CRUD operations
type SubscriptionHandler struct {
	createUseCase     *usecases.CreateSubscriptionUseCase
	bulkCreateUseCase *usecases.BulkCreateSubscriptionsUseCase
	listUseCase       *usecases.ListSubscriptionsUseCase
	logger            logger.Interface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	bulkCreateUC *usecases.BulkCreateSubscriptionsUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUseCase:     createUC,
		bulkCreateUseCase: bulkCreateUC,
		listUseCase:       listUC,
		logger:            logger,
	}
}

// CreateSubscriptionRequest represents the request to create a subscription
type CreateSubscriptionRequest struct {
	UserID       uint                   `json:"user_id" binding:"required"`
	Name         string                 `json:"name" binding:"required"`
	Price        float64                `json:"price" binding:"required"`
	Currency     string                 `json:"currency" binding:"required,oneof=BRL USD"`
	BillingCycle string                 `json:"billing_cycle" binding:"required,oneof=weekly monthly yearly"`
	StartDate    *time.Time             `json:"start_date"`
	TrialEndsAt  *time.Time             `json:"trial_ends_at"`
	Metadata     map[string]interface{} `json:"metadata"`
}

// BulkCreateRequest represents the request to create many subscriptions at once
type BulkCreateRequest struct {
	UserID        uint                        `json:"user_id" binding:"required"`
	Subscriptions []CreateSubscriptionRequest `json:"subscriptions" binding:"required,min=1,dive"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	sub, err := h.createUseCase.Execute(c.Request.Context(), toCreateCommand(req))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.ErrorResponseWithError(c, apperrors.NewNotFoundError("user not found"))
			return
		}
		h.logger.Errorw("failed to create subscription", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}

	utils.CreatedResponse(c, subdto.SubscriptionToDTO(sub))
}

func (h *SubscriptionHandler) BulkCreateSubscriptions(c *gin.Context) {
	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bulk create", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	entries := make([]usecases.CreateSubscriptionCommand, len(req.Subscriptions))
	for i, entry := range req.Subscriptions {
		entries[i] = toCreateCommand(entry)
	}

	result, err := h.bulkCreateUseCase.Execute(c.Request.Context(), usecases.BulkCreateSubscriptionsCommand{
		UserID:        req.UserID,
		Subscriptions: entries,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.ErrorResponseWithError(c, apperrors.NewNotFoundError("user not found"))
			return
		}
		h.logger.Errorw("failed to bulk create subscriptions", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}

	utils.CreatedResponse(c, subdto.BulkCreateResultDTO{
		Created: result.Created,
		IDs:     result.IDs,
	})
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	query := usecases.ListSubscriptionsQuery{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 20),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.Query("sort_desc") == "true",
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		uid := uint(userID)
		query.UserID = &uid
	}
	if status := c.Query("status"); status != "" {
		query.Status = &status
	}

	subs, total, err := h.listUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorw("failed to list subscriptions", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}

	totalPages := int(total) / query.PageSize
	if int(total)%query.PageSize > 0 {
		totalPages++
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      subdto.SubscriptionsToDTO(subs),
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	})
}

func toCreateCommand(req CreateSubscriptionRequest) usecases.CreateSubscriptionCommand {
	startDate := biztime.NowUTC()
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	return usecases.CreateSubscriptionCommand{
		UserID:       req.UserID,
		Name:         req.Name,
		Price:        req.Price,
		Currency:     req.Currency,
		BillingCycle: req.BillingCycle,
		StartDate:    startDate,
		TrialEndsAt:  req.TrialEndsAt,
		Metadata:     req.Metadata,
	}
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
