package service

import (
	"context"

	"bazaar/internal/domain/entity"
)

// Mailer defines the interface for transactional email delivery. Review
// outcomes must not fail because a mail could not be sent, so callers treat
// errors from these methods as log-and-continue.
type Mailer interface {
	// SendRegistrationReceived confirms to the applicant that their
	// application was recorded and is pending review.
	SendRegistrationReceived(ctx context.Context, req *entity.VendorRegistrationRequest) error

	// SendAdminReviewAlert notifies the admin inbox that a new application
	// is waiting for review.
	SendAdminReviewAlert(ctx context.Context, req *entity.VendorRegistrationRequest) error

	// SendApprovalWelcome tells the applicant their store is live, including
	// the storefront slug and trial end date.
	SendApprovalWelcome(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error

	// SendApprovalSummary tells the admin inbox what an approval provisioned:
	// the new account, storefront and trial window.
	SendApprovalSummary(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error

	// SendRejectionNotice tells the applicant their application was declined
	// and why.
	SendRejectionNotice(ctx context.Context, req *entity.VendorRegistrationRequest) error

	// SendTrialExpiryNotice warns a vendor their trial has lapsed and access
	// will end without an upgrade.
	SendTrialExpiryNotice(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error
}
