package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	subdto "subtrack/internal/application/subscription/dto"
	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// ScheduledHandler exposes the renewal and reminder runs as HTTP triggers for
// external cron callers.
type ScheduledHandler struct {
	processRenewalsUC     *usecases.ProcessRenewalsUseCase
	notifySubscriptionsUC *usecases.NotifySubscriptionsUseCase
	logger                logger.Interface
}

// NewScheduledHandler creates a new scheduled operations handler
func NewScheduledHandler(
	processRenewalsUC *usecases.ProcessRenewalsUseCase,
	notifySubscriptionsUC *usecases.NotifySubscriptionsUseCase,
	logger logger.Interface,
) *ScheduledHandler {
	return &ScheduledHandler{
		processRenewalsUC:     processRenewalsUC,
		notifySubscriptionsUC: notifySubscriptionsUC,
		logger:                logger,
	}
}

// ProcessRenewalsRequest optionally overrides the reference date for a run.
type ProcessRenewalsRequest struct {
	ReferenceDate *time.Time `json:"reference_date"`
}

// NotifyRenewalsRequest optionally overrides the window and date for a run.
type NotifyRenewalsRequest struct {
	DaysBefore *int       `json:"days_before"`
	Today      *time.Time `json:"today"`
}

func (h *ScheduledHandler) ProcessRenewals(c *gin.Context) {
	var req ProcessRenewalsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	cmd := usecases.ProcessRenewalsCommand{}
	if req.ReferenceDate != nil {
		cmd.ReferenceDate = req.ReferenceDate.UTC()
	}

	result, err := h.processRenewalsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("renewal run failed", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "renewal run failed")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "renewals processed", subdto.RenewalRunToDTO(result))
}

func (h *ScheduledHandler) NotifyRenewals(c *gin.Context) {
	var req NotifyRenewalsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	cmd := usecases.NotifySubscriptionsCommand{}
	if req.DaysBefore != nil {
		cmd.DaysBefore = *req.DaysBefore
	}
	if req.Today != nil {
		cmd.Today = req.Today.UTC()
	}

	result, err := h.notifySubscriptionsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("reminder run failed", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "reminder run failed")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reminders processed", subdto.NotificationRunToDTO(result))
}
