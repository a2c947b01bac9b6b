// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
	hasher           service.PasswordHasher
	mailer           service.Mailer
	defaultState     string
	defaultRadiusKm  float64
	logger           *slog.Logger
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	RegistrationRepo repository.RegistrationRepository
	UserRepo         repository.UserRepository
	Hasher           service.PasswordHasher
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	defaultState := ""
	defaultRadius := 0.0
	if params.Config != nil && params.Config.Registration != nil {
		defaultState = params.Config.Registration.DefaultState
		defaultRadius = params.Config.Registration.DefaultDeliveryRadius
	}

	return &registrationService{
		registrationRepo: params.RegistrationRepo,
		userRepo:         params.UserRepo,
		hasher:           params.Hasher,
		mailer:           params.Mailer,
		defaultState:     defaultState,
		defaultRadiusKm:  defaultRadius,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRegistration records a new vendor application in pending status.
func (srv *registrationService) SubmitRegistration(ctx context.Context, input *usecase.SubmitRegistrationInput) (*usecase.SubmitRegistrationOutput, error) {
	srv.log(ctx).Info("Starting vendor registration intake", slog.String("email", input.Email))

	if !input.TermsAccepted || !input.PrivacyAccepted {
		return nil, domainerrors.ErrValidation.WithDetails("terms and privacy policy must both be accepted")
	}

	// An open application wins over an existing account: the two duplicate
	// cases produce distinct error codes, checked in that order.
	if _, err := srv.registrationRepo.FindActiveByEmail(ctx, input.Email); err == nil {
		srv.log(ctx).Warn("Intake rejected, open application exists", slog.String("email", input.Email))

		return nil, domainerrors.ErrDuplicateRequest
	} else if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return nil, errors.Wrap(err, "failed to check open applications during intake")
	}

	taken, err := srv.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing accounts during intake")
	}
	if taken {
		srv.log(ctx).Warn("Intake rejected, account exists", slog.String("email", input.Email))

		return nil, domainerrors.ErrDuplicateUser
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during intake", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during intake")
	}

	req := srv.buildRequest(input, hashedPassword)

	if err := srv.registrationRepo.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			srv.log(ctx).Warn("Intake rejected, open application exists", slog.String("email", input.Email))

			return nil, domainerrors.ErrDuplicateRequest
		}

		return nil, errors.Wrap(err, "failed to create registration request")
	}

	srv.log(ctx).Info("Vendor registration recorded", slog.Any("requestID", req.ID), slog.String("email", req.Email))

	// Mail failures never fail the intake.
	if err := srv.mailer.SendRegistrationReceived(ctx, req); err != nil {
		srv.log(ctx).Warn("Failed to send intake confirmation email", slog.Any("requestID", req.ID), slog.Any("error", err))
	}
	if err := srv.mailer.SendAdminReviewAlert(ctx, req); err != nil {
		srv.log(ctx).Warn("Failed to send admin review alert", slog.Any("requestID", req.ID), slog.Any("error", err))
	}

	return &usecase.SubmitRegistrationOutput{Request: req}, nil
}

// GetRegistrationStatus reports the review state of the latest application for an email.
func (srv *registrationService) GetRegistrationStatus(ctx context.Context, email string) (*usecase.RegistrationStatusOutput, error) {
	req, err := srv.registrationRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration request by email")
	}

	return &usecase.RegistrationStatusOutput{
		Status:       req.Status,
		SubmittedAt:  req.CreatedAt,
		ReviewedAt:   req.ReviewedAt,
		RejectReason: req.RejectReason,
	}, nil
}

// buildRequest maps the intake form onto a pending request, filling
// location defaults and pinning the package to the premium tier.
func (srv *registrationService) buildRequest(input *usecase.SubmitRegistrationInput, hashedPassword string) *entity.VendorRegistrationRequest {
	state := input.State
	if state == "" {
		state = srv.defaultState
	}

	radius := input.DeliveryRadiusKm
	if radius <= 0 {
		radius = srv.defaultRadiusKm
	}

	now := time.Now()

	return &entity.VendorRegistrationRequest{
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,

		CompanyName:     input.CompanyName,
		BusinessType:    input.BusinessType,
		Category:        input.Category,
		YearsInBusiness: input.YearsInBusiness,
		EmployeeCount:   input.EmployeeCount,

		AddressLine1:     input.AddressLine1,
		AddressLine2:     input.AddressLine2,
		City:             input.City,
		State:            state,
		PostalCode:       input.PostalCode,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		DeliveryRadiusKm: radius,

		GSTNumber:      input.GSTNumber,
		GSTVerified:    input.GSTVerified,
		GSTDetails:     input.GSTDetails,
		CertificateURL: input.CertificateURL,
		LogoURL:        input.LogoURL,
		BannerURL:      input.BannerURL,
		Tagline:        input.Tagline,

		// Every application enters on the premium tier regardless of the
		// client-supplied package.
		SelectedPackage: entity.PlanPremium,
		BillingCycle:    entity.BillingCycleMonthly,
		AddOns:          input.AddOns,

		TermsAccepted:   input.TermsAccepted,
		PrivacyAccepted: input.PrivacyAccepted,

		Status:    entity.RegistrationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
