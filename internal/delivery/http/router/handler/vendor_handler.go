package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// VendorHandlerParams holds dependencies for VendorHandler, injected by Fx.
type VendorHandlerParams struct {
	fx.In

	VendorUC usecase.VendorUsecase
	Logger   *slog.Logger
}

// VendorHandler holds dependencies for storefront handlers.
type VendorHandler struct {
	vendorUC usecase.VendorUsecase
	logger   *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler
func NewVendorHandler(params VendorHandlerParams) *VendorHandler {
	return &VendorHandler{
		vendorUC: params.VendorUC,
		logger:   params.Logger,
	}
}

// UpdateProfileRequest carries self-service storefront edits. Absent fields
// leave the stored value untouched.
type UpdateProfileRequest struct {
	StoreName        *string  `json:"store_name" validate:"omitempty,min=2,max=120"`
	Tagline          *string  `json:"tagline" validate:"omitempty,max=200"`
	AddressLine1     *string  `json:"address_line1" validate:"omitempty,max=200"`
	AddressLine2     *string  `json:"address_line2" validate:"omitempty,max=200"`
	City             *string  `json:"city" validate:"omitempty,max=100"`
	State            *string  `json:"state" validate:"omitempty,max=100"`
	PostalCode       *string  `json:"postal_code" validate:"omitempty,max=20"`
	Latitude         *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	DeliveryRadiusKm *float64 `json:"delivery_radius_km" validate:"omitempty,gt=0,lte=100"`
}

// GetStorefront returns the public profile behind a storefront slug.
func (h *VendorHandler) GetStorefront(c echo.Context) error {
	profile, err := h.vendorUC.GetStorefront(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Storefront retrieved")
}

// GetStorefrontQR renders a PNG QR code linking to the storefront.
func (h *VendorHandler) GetStorefrontQR(c echo.Context) error {
	png, err := h.vendorUC.GetStorefrontQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// UpdateProfile applies self-service edits to the caller's storefront.
func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	profile, err := h.vendorUC.UpdateProfile(c.Request().Context(), &usecase.UpdateVendorProfileInput{
		UserID:           userID,
		StoreName:        req.StoreName,
		Tagline:          req.Tagline,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		State:            req.State,
		PostalCode:       req.PostalCode,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// UploadAsset stores a logo or banner image for the caller's storefront.
func (h *VendorHandler) UploadAsset(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	kind := c.FormValue("kind")
	if kind != "logo" && kind != "banner" {
		return response.BadRequest(c, "INVALID_INPUT", "Asset kind must be logo or banner")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing asset file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Unreadable asset file")
	}
	defer file.Close()

	url, err := h.vendorUC.UploadAsset(c.Request().Context(), &usecase.UploadAssetInput{
		UserID:      userID,
		Kind:        kind,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "Asset uploaded")
}
