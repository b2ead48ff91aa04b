package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"subtrack/internal/domain/user"
	uservo "subtrack/internal/domain/user/valueobjects"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// UserHandler handles user operations
type UserHandler struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo user.Repository, logger logger.Interface) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUserRequest represents the request to register a user
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// UserResponse is the transport view of a user
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	email, err := uservo.NewEmail(req.Email)
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	taken, err := h.userRepo.ExistsByEmail(c.Request.Context(), email.String())
	if err != nil {
		h.logger.Errorw("failed to check user email", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	if taken {
		utils.ErrorResponseWithError(c, apperrors.NewConflictError("email already registered"))
		return
	}

	entity, err := user.NewUser(email, req.Name)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.Create(c.Request.Context(), entity); err != nil {
		h.logger.Errorw("failed to create user", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	utils.CreatedResponse(c, toUserResponse(entity))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	entity, err := h.userRepo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.logger.Errorw("failed to get user", "id", id, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to get user")
		return
	}
	if entity == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(entity))
}

func toUserResponse(entity *user.User) UserResponse {
	return UserResponse{
		ID:        entity.ID(),
		Email:     entity.Email().String(),
		Name:      entity.Name(),
		CreatedAt: entity.CreatedAt(),
	}
}
