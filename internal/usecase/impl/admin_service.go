package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"
	"bazaar/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface. Approval provisions
// the account, storefront profile and trial subscription in one transaction;
// any failure rolls everything back and leaves the request pending.
type adminService struct {
	txManager        repository.TransactionManager
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
	vendorRepo       repository.VendorRepository
	mailer           service.Mailer
	trialDays        int
	logger           *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	RegistrationRepo repository.RegistrationRepository
	UserRepo         repository.UserRepository
	VendorRepo       repository.VendorRepository
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	trialDays := 0
	if params.Config != nil && params.Config.Trial != nil {
		trialDays = params.Config.Trial.DurationDays
	}

	return &adminService{
		txManager:        params.TxManager,
		registrationRepo: params.RegistrationRepo,
		userRepo:         params.UserRepo,
		vendorRepo:       params.VendorRepo,
		mailer:           params.Mailer,
		trialDays:        trialDays,
		logger:           params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRegistrations pages through the review queue, newest first.
func (srv *adminService) ListRegistrations(ctx context.Context, input *usecase.ListRegistrationsInput) (*usecase.ListRegistrationsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	requests, total, err := srv.registrationRepo.List(ctx, input.Status, limit, input.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list registration requests")
	}

	return &usecase.ListRegistrationsOutput{Requests: requests, Total: total}, nil
}

// GetRegistration fetches one application with every submitted section.
func (srv *adminService) GetRegistration(ctx context.Context, requestID uuid.UUID) (*entity.VendorRegistrationRequest, error) {
	req, err := srv.registrationRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration request")
	}

	return req, nil
}

// ApproveRegistration provisions the vendor in one transaction. Only a
// pending request can be approved; repeating the call fails with the
// already-processed error, it never provisions twice.
func (srv *adminService) ApproveRegistration(ctx context.Context, requestID, reviewerID uuid.UUID) (*usecase.ApproveRegistrationOutput, error) {
	srv.log(ctx).Info("Starting registration approval", slog.Any("requestID", requestID), slog.Any("reviewerID", reviewerID))

	req, err := srv.registrationRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration request")
	}

	switch req.Status {
	case entity.RegistrationApproved:
		return nil, domainerrors.ErrAlreadyProcessed.WithDetails("the request was already approved")
	case entity.RegistrationRejected:
		return nil, domainerrors.ErrAlreadyProcessed.WithDetails("the request was rejected")
	}

	// A stale request may sit in the queue after its email registered an
	// account some other way; approving it would collide on the unique email.
	taken, err := srv.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for an existing account before approval")
	}
	if taken {
		return nil, domainerrors.ErrConflict.WithDetails("an account with this email already exists")
	}

	slug, err := srv.pickSlug(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		createdUser *entity.User
		createdSub  *entity.VendorSubscription
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		regRepo := repoFactory.NewRegistrationRepository()
		userRepo := repoFactory.NewUserRepository()
		subRepo := repoFactory.NewSubscriptionRepository()

		// The status guard on MarkReviewed is what makes concurrent
		// approvals safe: exactly one reviewer flips pending to approved.
		decision := &entity.ReviewDecision{
			Status:     entity.RegistrationApproved,
			ReviewerID: reviewerID,
			ReviewedAt: time.Now(),
		}
		if err := regRepo.MarkReviewed(ctx, req.ID, decision); err != nil {
			return errors.Wrap(err, "failed to mark registration reviewed")
		}

		user := buildVendorAccount(req, slug)
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create vendor account")
		}

		sub := entity.NewTrialSubscription(user.ID, time.Now(), srv.trialDays)
		if err := subRepo.Create(ctx, sub); err != nil {
			return errors.Wrap(err, "failed to create trial subscription")
		}

		createdUser = user
		createdSub = sub

		return nil
	})

	if err != nil {
		// Losing the pending-status race means another reviewer finished
		// first; the rollback left nothing behind, so this call reports the
		// same error a late sequential call would.
		if errors.Is(err, repository.ErrRegistrationNotPending) {
			return nil, domainerrors.ErrAlreadyProcessed.WithDetails("another reviewer processed the request first")
		}

		// The email unique constraint firing inside the transaction is the
		// same stale-request conflict, caught at the last possible moment.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrConflict.WithDetails("an account with this email already exists")
		}

		srv.log(ctx).Error("Approval transaction failed, rolled back",
			slog.Any("requestID", requestID), slog.Any("error", err))

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("failed to execute approval transaction")
	}

	srv.log(ctx).Info("Vendor approved",
		slog.Any("requestID", requestID),
		slog.Any("userID", createdUser.ID),
		slog.String("slug", slug),
		slog.Time("trialEndsAt", createdSub.EndDate))

	// Post-commit emails are independent of each other and of the already
	// committed transaction; either failing is log-only.
	if err := srv.mailer.SendApprovalWelcome(ctx, createdUser, createdSub); err != nil {
		srv.log(ctx).Warn("Failed to send approval welcome email", slog.Any("userID", createdUser.ID), slog.Any("error", err))
	}
	if err := srv.mailer.SendApprovalSummary(ctx, createdUser, createdSub); err != nil {
		srv.log(ctx).Warn("Failed to send admin approval summary", slog.Any("userID", createdUser.ID), slog.Any("error", err))
	}

	return &usecase.ApproveRegistrationOutput{User: createdUser, Subscription: createdSub}, nil
}

// RejectRegistration closes the application with a reason and notifies the applicant.
func (srv *adminService) RejectRegistration(ctx context.Context, input *usecase.RejectRegistrationInput) error {
	srv.log(ctx).Info("Rejecting registration", slog.Any("requestID", input.RequestID), slog.Any("reviewerID", input.ReviewerID))

	if strings.TrimSpace(input.Reason) == "" {
		return domainerrors.ErrValidation.WithDetails("a rejection reason is required")
	}

	decision := &entity.ReviewDecision{
		Status:       entity.RegistrationRejected,
		ReviewerID:   input.ReviewerID,
		ReviewedAt:   time.Now(),
		RejectReason: input.Reason,
	}
	if err := srv.registrationRepo.MarkReviewed(ctx, input.RequestID, decision); err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return domainerrors.ErrNotFound
		case errors.Is(err, repository.ErrRegistrationNotPending):
			return domainerrors.ErrAlreadyProcessed
		}

		return errors.Wrap(err, "failed to mark registration rejected")
	}

	req, err := srv.registrationRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		srv.log(ctx).Warn("Rejected request could not be reloaded for notification", slog.Any("requestID", input.RequestID), slog.Any("error", err))

		return nil
	}

	if err := srv.mailer.SendRejectionNotice(ctx, req); err != nil {
		srv.log(ctx).Warn("Failed to send rejection notice", slog.Any("requestID", input.RequestID), slog.Any("error", err))
	}

	return nil
}

// pickSlug derives the storefront slug from the company name and suffixes it
// with part of the request ID only when the plain slug is taken.
func (srv *adminService) pickSlug(ctx context.Context, req *entity.VendorRegistrationRequest) (string, error) {
	slug := util.Slugify(req.CompanyName)
	if slug == "" {
		return "", domainerrors.ErrValidation.WithDetails("company name does not produce a usable storefront slug")
	}

	_, err := srv.vendorRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrVendorNotFound) {
		return slug, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to check slug availability")
	}

	suffix := strings.ReplaceAll(req.ID.String(), "-", "")[:8]

	return slug + "-" + suffix, nil
}

// buildVendorAccount maps an approved application onto the account aggregate
// that approval provisions.
func buildVendorAccount(req *entity.VendorRegistrationRequest, slug string) *entity.User {
	now := time.Now()

	return &entity.User{
		Name:            req.FullName,
		Email:           req.Email,
		EmailVerifiedAt: &now,
		Phone:           req.Phone,
		PasswordHash:    req.PasswordHash,
		Role:            entity.RoleVendor,
		VendorProfile: &entity.VendorProfile{
			StoreName:        req.CompanyName,
			Slug:             slug,
			Tagline:          req.Tagline,
			Category:         req.Category,
			AddressLine1:     req.AddressLine1,
			AddressLine2:     req.AddressLine2,
			City:             req.City,
			State:            req.State,
			PostalCode:       req.PostalCode,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			DeliveryRadiusKm: req.DeliveryRadiusKm,
			LogoURL:          req.LogoURL,
			BannerURL:        req.BannerURL,
			BusinessLicense:  req.GSTNumber,
			// Approval is the vetting step; a live storefront is a verified one.
			IsVerified: true,
		},
	}
}
