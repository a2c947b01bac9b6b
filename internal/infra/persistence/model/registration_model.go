package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorRegistrationRequestModel mirrors the 'vendor_registration_requests'
// table. The partial unique index lets a rejected applicant re-apply with the
// same email while blocking a second open or approved request.
type VendorRegistrationRequestModel struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`

	FullName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_registration_open_email,where:status <> 'rejected'"`
	Phone        string `gorm:"type:varchar(20)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	CompanyName     string `gorm:"type:varchar(100);not null"`
	BusinessType    string `gorm:"type:varchar(50)"`
	Category        string `gorm:"type:varchar(50);index"`
	YearsInBusiness int
	EmployeeCount   int

	AddressLine1     string `gorm:"type:varchar(255)"`
	AddressLine2     string `gorm:"type:varchar(255)"`
	City             string `gorm:"type:varchar(100)"`
	State            string `gorm:"type:varchar(100)"`
	PostalCode       string `gorm:"type:varchar(20)"`
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm float64 `gorm:"type:decimal(6,2)"`

	GSTNumber      string `gorm:"type:varchar(20)"`
	GSTVerified    bool   `gorm:"not null;default:false"`
	GSTDetails     []byte `gorm:"type:jsonb"`
	CertificateURL string `gorm:"type:varchar(512)"`
	LogoURL        string `gorm:"type:varchar(512)"`
	BannerURL      string `gorm:"type:varchar(512)"`
	Tagline        string `gorm:"type:varchar(255)"`

	SelectedPackage string `gorm:"type:varchar(20);not null"`
	BillingCycle    string `gorm:"type:varchar(20);not null"`
	AddOns          []byte `gorm:"type:jsonb"`

	TermsAccepted   bool `gorm:"not null"`
	PrivacyAccepted bool `gorm:"not null"`

	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewerID   *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt   *time.Time
	RejectReason string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorRegistrationRequestModel) TableName() string {
	return "vendor_registration_requests"
}
