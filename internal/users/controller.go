package users

import (
	"errors"
	"net/http"

	"contactly/internal/shared/middleware"
	"contactly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetMe(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	resp := NewProfileResponse(user)
	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved successfully", resp, nil)
}

func (c *Controller) UpdateAvatar(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	var req UpdateAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	updated, err := c.service.UpdateAvatar(ctx.Request.Context(), user.Email, req.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update avatar", nil, nil)
		}
		return
	}

	resp := NewProfileResponse(updated)
	response.RespondJSON(ctx, "success", http.StatusOK, "Avatar updated successfully", resp, nil)
}
