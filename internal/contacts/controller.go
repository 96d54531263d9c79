package contacts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"contactly/internal/shared/middleware"
	"contactly/internal/shared/utils/response"
	"contactly/internal/users"
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

func (c *Controller) ListContacts(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	contacts, total, err := c.service.ListContacts(ctx.Request.Context(), user.ID, offset, limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve contacts", nil, nil)
		return
	}

	resp := NewContactListResponse(contacts, total, offset, limit)
	response.RespondJSON(ctx, "success", http.StatusOK, "Contacts retrieved successfully", resp, nil)
}

func (c *Controller) GetContact(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, nil)
		return
	}

	contact, err := c.service.GetContact(ctx.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Contact not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve contact", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact retrieved successfully", contact.ToResponse(), nil)
}

func (c *Controller) CreateContact(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	var req CreateContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	contact, err := c.service.CreateContact(ctx.Request.Context(), user.ID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create contact", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Contact created successfully", contact.ToResponse(), nil)
}

func (c *Controller) UpdateContact(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, nil)
		return
	}

	var req UpdateContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	contact, err := c.service.UpdateContact(ctx.Request.Context(), id, user.ID, req)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Contact not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update contact", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact updated successfully", contact.ToResponse(), nil)
}

func (c *Controller) DeleteContact(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, nil)
		return
	}

	if err := c.service.DeleteContact(ctx.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, ErrContactNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Contact not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete contact", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact deleted successfully", nil, nil)
}

func (c *Controller) SearchContacts(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	query := ctx.Query("q")
	if query == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Query parameter 'q' is required", nil, nil)
		return
	}

	contacts, err := c.service.SearchContacts(ctx.Request.Context(), user.ID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to search contacts", nil, nil)
		return
	}

	items := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contacts[i].ToResponse())
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Contacts retrieved successfully", items, nil)
}

func (c *Controller) UpcomingBirthdays(ctx *gin.Context) {
	user, ok := middleware.CurrentUser[*users.User](ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
		return
	}

	contacts, err := c.service.UpcomingBirthdays(ctx.Request.Context(), user.ID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve birthdays", nil, nil)
		return
	}

	items := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contacts[i].ToResponse())
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Upcoming birthdays retrieved successfully", items, nil)
}
