// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus is the workflow state of a vendor application.
type RegistrationStatus string

const (
	// RegistrationPending means the application is waiting for admin review.
	RegistrationPending RegistrationStatus = "pending"
	// RegistrationApproved means an admin accepted the application and the
	// vendor account has been created.
	RegistrationApproved RegistrationStatus = "approved"
	// RegistrationRejected means an admin declined the application.
	RegistrationRejected RegistrationStatus = "rejected"
)

// VendorRegistrationRequest is the pre-account vendor application. It holds
// everything collected by the multi-section signup form and is only ever
// mutated by the admin review flow: pending -> approved or pending -> rejected,
// with no reversal.
type VendorRegistrationRequest struct {
	ID uuid.UUID

	// Identity section. Email is unique across both open applications and
	// existing user accounts. Password arrives pre-hashed from the intake.
	FullName     string
	Email        string
	Phone        string
	PasswordHash string

	// Business section.
	CompanyName     string
	BusinessType    string
	Category        string
	YearsInBusiness int
	EmployeeCount   int

	// Location section. Coordinates are optional; DeliveryRadiusKm defaults
	// from config when the applicant leaves it empty.
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	PostalCode       string
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm float64

	// Documents section. GSTDetails holds the raw lookup payload returned by
	// the external verification, stored opaquely.
	GSTNumber      string
	GSTVerified    bool
	GSTDetails     []byte
	CertificateURL string
	LogoURL        string
	BannerURL      string
	Tagline        string

	// Commercial section. SelectedPackage is forced to the premium tier at
	// intake regardless of the client-supplied value.
	SelectedPackage PlanTier
	BillingCycle    string
	AddOns          []string

	// Consent section.
	TermsAccepted   bool
	PrivacyAccepted bool

	// Review workflow.
	Status       RegistrationStatus
	ReviewerID   *uuid.UUID
	ReviewedAt   *time.Time
	RejectReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending reports whether the application is still open for review.
func (r *VendorRegistrationRequest) IsPending() bool {
	return r.Status == RegistrationPending
}

// ReviewDecision captures the outcome of an admin review. RejectReason is
// only meaningful when Status is RegistrationRejected.
type ReviewDecision struct {
	Status       RegistrationStatus
	ReviewerID   uuid.UUID
	ReviewedAt   time.Time
	RejectReason string
}
