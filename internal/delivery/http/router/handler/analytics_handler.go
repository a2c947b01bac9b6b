package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler holds dependencies for dashboard handlers.
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// GetDashboard returns the vendor dashboard. Vendors read their own;
// admins may read any vendor's via the vendor_id query parameter.
func (h *AnalyticsHandler) GetDashboard(c echo.Context) error {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	isAdmin := middleware.HasRole(c, "admin")

	vendorID := requesterID
	if raw := c.QueryParam("vendor_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid vendor ID")
		}
		vendorID = parsed
	}

	output, err := h.analyticsUC.GetDashboard(c.Request().Context(), &usecase.DashboardInput{
		VendorID:       vendorID,
		RequesterID:    requesterID,
		RequesterAdmin: isAdmin,
		Days:           intQueryParam(c, "days"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Dashboard retrieved")
}
