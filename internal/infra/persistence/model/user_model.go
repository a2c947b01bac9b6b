package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Phone           string    `gorm:"type:varchar(20)"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	Role            string    `gorm:"type:varchar(20);not null;index"`
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Associations
	VendorProfile *VendorProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// VendorProfileModel mirrors the 'vendor_profiles' table, owned 1:1 by a
// vendor user.
type VendorProfileModel struct {
	UserID           uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreName        string    `gorm:"type:varchar(100);not null"`
	Slug             string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Tagline          string    `gorm:"type:varchar(255)"`
	Description      string    `gorm:"type:text"`
	Category         string    `gorm:"type:varchar(50);index"`
	AddressLine1     string    `gorm:"type:varchar(255)"`
	AddressLine2     string    `gorm:"type:varchar(255)"`
	City             string    `gorm:"type:varchar(100);index"`
	State            string    `gorm:"type:varchar(100)"`
	PostalCode       string    `gorm:"type:varchar(20)"`
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm float64 `gorm:"type:decimal(6,2)"`
	LogoURL          string  `gorm:"type:varchar(512)"`
	BannerURL        string  `gorm:"type:varchar(512)"`
	BusinessLicense  string  `gorm:"type:varchar(50)"`
	IsVerified       bool    `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorProfileModel) TableName() string {
	return "vendor_profiles"
}
