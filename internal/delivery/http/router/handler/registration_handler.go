package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RegistrationHandlerParams holds dependencies for RegistrationHandler, injected by Fx.
type RegistrationHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	Logger         *slog.Logger
}

// RegistrationHandler holds dependencies for vendor application handlers.
type RegistrationHandler struct {
	registrationUC usecase.RegistrationUsecase
	logger         *slog.Logger
}

// NewRegistrationHandler is the constructor for RegistrationHandler
func NewRegistrationHandler(params RegistrationHandlerParams) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUC: params.RegistrationUC,
		logger:         params.Logger,
	}
}

// SubmitRegistrationRequest mirrors the multi-section signup form.
type SubmitRegistrationRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8"`

	CompanyName     string `json:"company_name" validate:"required,max=100"`
	BusinessType    string `json:"business_type" validate:"omitempty,max=50"`
	Category        string `json:"category" validate:"omitempty,max=50"`
	YearsInBusiness int    `json:"years_in_business" validate:"omitempty,min=0"`
	EmployeeCount   int    `json:"employee_count" validate:"omitempty,min=0"`

	AddressLine1     string   `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2     string   `json:"address_line2" validate:"omitempty,max=255"`
	City             string   `json:"city" validate:"omitempty,max=100"`
	State            string   `json:"state" validate:"omitempty,max=100"`
	PostalCode       string   `json:"postal_code" validate:"omitempty,max=20"`
	Latitude         *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	DeliveryRadiusKm float64  `json:"delivery_radius_km" validate:"omitempty,min=0"`

	GSTNumber      string          `json:"gst_number" validate:"omitempty,max=20"`
	GSTVerified    bool            `json:"gst_verified"`
	GSTDetails     json.RawMessage `json:"gst_details" validate:"omitempty"`
	CertificateURL string          `json:"certificate_url" validate:"omitempty,url"`
	LogoURL        string          `json:"logo_url" validate:"omitempty,url"`
	BannerURL      string          `json:"banner_url" validate:"omitempty,url"`
	Tagline        string          `json:"tagline" validate:"omitempty,max=255"`

	SelectedPackage string   `json:"selected_package" validate:"omitempty,max=20"`
	BillingCycle    string   `json:"billing_cycle" validate:"omitempty,max=20"`
	AddOns          []string `json:"add_ons" validate:"omitempty,dive,max=50"`

	TermsAccepted   bool `json:"terms_accepted"`
	PrivacyAccepted bool `json:"privacy_accepted"`
}

// SubmitRegistration handles the public vendor application intake.
func (h *RegistrationHandler) SubmitRegistration(c echo.Context) error {
	var req SubmitRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.registrationUC.SubmitRegistration(c.Request().Context(), &usecase.SubmitRegistrationInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		CompanyName:      req.CompanyName,
		BusinessType:     req.BusinessType,
		Category:         req.Category,
		YearsInBusiness:  req.YearsInBusiness,
		EmployeeCount:    req.EmployeeCount,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		State:            req.State,
		PostalCode:       req.PostalCode,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		GSTNumber:        req.GSTNumber,
		GSTVerified:      req.GSTVerified,
		GSTDetails:       req.GSTDetails,
		CertificateURL:   req.CertificateURL,
		LogoURL:          req.LogoURL,
		BannerURL:        req.BannerURL,
		Tagline:          req.Tagline,
		SelectedPackage:  req.SelectedPackage,
		BillingCycle:     req.BillingCycle,
		AddOns:           req.AddOns,
		TermsAccepted:    req.TermsAccepted,
		PrivacyAccepted:  req.PrivacyAccepted,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"request_id":   output.Request.ID,
		"status":       output.Request.Status,
		"submitted_at": output.Request.CreatedAt,
	}, "Application submitted and queued for review")
}

// GetRegistrationStatus lets an applicant poll the state of their application.
func (h *RegistrationHandler) GetRegistrationStatus(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "email query parameter is required")
	}

	status, err := h.registrationUC.GetRegistrationStatus(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, status, "Registration status retrieved")
}
