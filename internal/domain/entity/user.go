package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Vendor users are only ever created as a
// side effect of approving a registration request, never directly by intake.
type User struct {
	ID              uuid.UUID
	Email           string // Unique login identifier across the platform.
	Name            string
	Phone           string
	PasswordHash    string
	Role            Role
	EmailVerifiedAt *time.Time // Set at creation time for approved vendors.
	VendorProfile   *VendorProfile
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin reports whether the user may review vendor applications.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VendorProfile holds the public store identity for a vendor user. It is
// owned 1:1 by the User created alongside it at approval time.
type VendorProfile struct {
	UserID           uuid.UUID
	StoreName        string
	Slug             string // Derived deterministically from the store name.
	Tagline          string
	Description      string
	Category         string
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	PostalCode       string
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm float64
	LogoURL          string
	BannerURL        string
	BusinessLicense  string // Holds the GST number from the application.
	IsVerified       bool   // True from approval onward.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
