// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitRegistrationInput carries the full multi-section vendor application.
type SubmitRegistrationInput struct {
	// Identity
	FullName string
	Email    string
	Phone    string
	Password string

	// Business
	CompanyName     string
	BusinessType    string
	Category        string
	YearsInBusiness int
	EmployeeCount   int

	// Location
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	PostalCode       string
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm float64

	// Documents
	GSTNumber      string
	GSTVerified    bool
	GSTDetails     []byte
	CertificateURL string
	LogoURL        string
	BannerURL      string
	Tagline        string

	// Commercial
	SelectedPackage string
	BillingCycle    string
	AddOns          []string

	// Consent
	TermsAccepted   bool
	PrivacyAccepted bool
}

// --- Output DTOs ---

// SubmitRegistrationOutput returns the recorded application's identifier and
// workflow state.
type SubmitRegistrationOutput struct {
	Request *entity.VendorRegistrationRequest
}

// RegistrationStatusOutput reports where an application stands in review.
type RegistrationStatusOutput struct {
	Status       entity.RegistrationStatus `json:"status"`
	SubmittedAt  time.Time                 `json:"submitted_at"`
	ReviewedAt   *time.Time                `json:"reviewed_at,omitempty"`
	RejectReason string                    `json:"reject_reason,omitempty"`
}

// RegistrationUsecase defines the interface for the vendor application intake.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type RegistrationUsecase interface {
	// SubmitRegistration validates and records a new vendor application in
	// pending status and fires the confirmation and admin alert emails.
	SubmitRegistration(ctx context.Context, input *SubmitRegistrationInput) (*SubmitRegistrationOutput, error)

	// GetRegistrationStatus reports the review state of the applicant's
	// open or most recent application.
	GetRegistrationStatus(ctx context.Context, email string) (*RegistrationStatusOutput, error)
}
