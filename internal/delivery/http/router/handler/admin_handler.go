package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler holds dependencies for the registration review handlers.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// RejectRegistrationRequest represents the request body for rejecting an application
type RejectRegistrationRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// ListRegistrations returns the review queue, optionally filtered by status.
func (h *AdminHandler) ListRegistrations(c echo.Context) error {
	input := &usecase.ListRegistrationsInput{
		Status: entity.RegistrationStatus(c.QueryParam("status")),
		Limit:  intQueryParam(c, "limit"),
		Offset: intQueryParam(c, "offset"),
	}

	output, err := h.adminUC.ListRegistrations(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"requests": output.Requests,
		"total":    output.Total,
	}, "Registration requests retrieved")
}

// GetRegistration returns one application with its full form payload.
func (h *AdminHandler) GetRegistration(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid request ID")
	}

	request, err := h.adminUC.GetRegistration(c.Request().Context(), requestID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, request, "Registration request retrieved")
}

// ApproveRegistration provisions the vendor account, profile and trial
// subscription for a pending application.
func (h *AdminHandler) ApproveRegistration(c echo.Context) error {
	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid request ID")
	}

	output, err := h.adminUC.ApproveRegistration(c.Request().Context(), requestID, reviewerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user_id":         output.User.ID,
		"vendor_id":       vendorID(output.User),
		"subscription_id": output.Subscription.ID,
		"storefront":      storefrontSlug(output.User),
		"trial_ends_at":   output.Subscription.EndDate,
	}, "Application approved and vendor account created")
}

// RejectRegistration declines a pending application with a reason.
func (h *AdminHandler) RejectRegistration(c echo.Context) error {
	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid request ID")
	}

	var req RejectRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rejection input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.adminUC.RejectRegistration(c.Request().Context(), &usecase.RejectRegistrationInput{
		RequestID:  requestID,
		ReviewerID: reviewerID,
		Reason:     req.Reason,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Application rejected")
}

func storefrontSlug(user *entity.User) string {
	if user.VendorProfile == nil {
		return ""
	}

	return user.VendorProfile.Slug
}

// The profile shares its primary key with the owning user account.
func vendorID(user *entity.User) uuid.UUID {
	if user.VendorProfile == nil {
		return uuid.Nil
	}

	return user.VendorProfile.UserID
}
