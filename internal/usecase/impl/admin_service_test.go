package impl

import (
	"context"
	"testing"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTrialDays = 20

type adminServiceFixture struct {
	service          usecase.AdminUsecase
	registrationRepo *mockRegistrationRepo
	userRepo         *mockUserRepo
	subscriptionRepo *mockSubscriptionRepo
	vendorRepo       *mockVendorRepo
	mailer           *mockMailer
}

func newAdminServiceFixture() *adminServiceFixture {
	registrationRepo := new(mockRegistrationRepo)
	userRepo := new(mockUserRepo)
	subscriptionRepo := new(mockSubscriptionRepo)
	vendorRepo := new(mockVendorRepo)
	mailer := new(mockMailer)

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}}

	service := NewAdminService(AdminServiceParams{
		TxManager:        txManager,
		RegistrationRepo: registrationRepo,
		UserRepo:         userRepo,
		VendorRepo:       vendorRepo,
		Mailer:           mailer,
		Config:           &config.Config{Trial: &config.TrialConfig{DurationDays: testTrialDays}},
		Logger:           testLogger(),
	})

	return &adminServiceFixture{
		service:          service,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		vendorRepo:       vendorRepo,
		mailer:           mailer,
	}
}

func pendingRequest() *entity.VendorRegistrationRequest {
	return &entity.VendorRegistrationRequest{
		ID:              uuid.New(),
		FullName:        "Asha Patel",
		Email:           "asha@spicebazaar.example",
		Phone:           "+919800000001",
		PasswordHash:    "$2a$12$hash",
		CompanyName:     "Spice Bazaar",
		Category:        "grocery",
		City:            "Pune",
		State:           "Maharashtra",
		SelectedPackage: entity.PlanPremium,
		BillingCycle:    entity.BillingCycleMonthly,
		Status:          entity.RegistrationPending,
		CreatedAt:       time.Now().Add(-time.Hour),
	}
}

func TestAdminService_ApproveRegistration_ProvisionsAccountTrialAndProfile(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()
	reviewerID := uuid.New()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").Return(nil, repository.ErrVendorNotFound)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.MatchedBy(func(d *entity.ReviewDecision) bool {
		return d.Status == entity.RegistrationApproved && d.ReviewerID == reviewerID
	})).Return(nil)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	f.subscriptionRepo.On("Create", ctx, mock.AnythingOfType("*entity.VendorSubscription")).Return(nil)
	f.mailer.On("SendApprovalWelcome", ctx, mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendApprovalSummary", ctx, mock.Anything, mock.Anything).Return(nil)

	before := time.Now()
	output, err := f.service.ApproveRegistration(ctx, req.ID, reviewerID)
	require.NoError(t, err)
	require.NotNil(t, output)

	user := output.User
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleVendor, user.Role)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, req.PasswordHash, user.PasswordHash)
	require.NotNil(t, user.VendorProfile)
	assert.Equal(t, "spice-bazaar", user.VendorProfile.Slug)
	assert.Equal(t, req.CompanyName, user.VendorProfile.StoreName)
	// An approved storefront goes live as a verified one.
	assert.True(t, user.VendorProfile.IsVerified)

	sub := output.Subscription
	require.NotNil(t, sub)
	assert.Equal(t, entity.PlanPremium, sub.PlanTier)
	assert.Equal(t, entity.SubscriptionTrial, sub.Status)
	assert.True(t, sub.IsTrial)
	assert.Equal(t, entity.EntitlementsFor(entity.PlanPremium), sub.Entitlements)

	// Trial runs exactly twenty days from the approval instant.
	wantEnd := before.AddDate(0, 0, testTrialDays)
	assert.WithinDuration(t, wantEnd, sub.EndDate, 5*time.Second)
	require.NotNil(t, sub.TrialEndsAt)
	assert.Equal(t, sub.EndDate, *sub.TrialEndsAt)
}

func TestAdminService_ApproveRegistration_SecondApproveFails(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()
	req.Status = entity.RegistrationApproved

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_PROCESSED", appErr.ErrorCode())
	assert.Equal(t, 400, appErr.HTTPCode())

	// No second account or subscription is ever created.
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.subscriptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.registrationRepo.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_ApproveRegistration_RejectedRequestFails(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()
	req.Status = entity.RegistrationRejected

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_PROCESSED", appErr.ErrorCode())
}

func TestAdminService_ApproveRegistration_SubscriptionFailureRollsBack(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").Return(nil, repository.ErrVendorNotFound)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.Anything).Return(nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.subscriptionRepo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRANSACTION_FAILED", appErr.ErrorCode())

	// No email goes out for a rolled-back approval.
	f.mailer.AssertNotCalled(t, "SendApprovalWelcome", mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendApprovalSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_ApproveRegistration_LosingReviewRaceFails(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").Return(nil, repository.ErrVendorNotFound)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.Anything).Return(repository.ErrRegistrationNotPending)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_PROCESSED", appErr.ErrorCode())
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminService_ApproveRegistration_ExistingAccountConflicts(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(true, nil)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.ErrorCode())
	assert.Equal(t, 400, appErr.HTTPCode())
	f.registrationRepo.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_ApproveRegistration_DuplicateEmailInTransactionConflicts(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	// The account appears between the pre-check and the insert; the unique
	// constraint still surfaces as a conflict, never as a server fault.
	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").Return(nil, repository.ErrVendorNotFound)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.Anything).Return(nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateUser)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.ErrorCode())
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestAdminService_ApproveRegistration_SummaryStillSentWhenWelcomeFails(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").Return(nil, repository.ErrVendorNotFound)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.Anything).Return(nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.subscriptionRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.mailer.On("SendApprovalWelcome", ctx, mock.Anything, mock.Anything).Return(errors.New("relay down"))
	f.mailer.On("SendApprovalSummary", ctx, mock.Anything, mock.Anything).Return(nil)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, output)
	f.mailer.AssertExpectations(t)
}

func TestAdminService_ApproveRegistration_SlugCollisionGetsSuffix(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.userRepo.On("ExistsByEmail", ctx, req.Email).Return(false, nil)
	f.vendorRepo.On("FindBySlug", ctx, "spice-bazaar").
		Return(&entity.VendorProfile{Slug: "spice-bazaar"}, nil)
	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.Anything).Return(nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.subscriptionRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.mailer.On("SendApprovalWelcome", ctx, mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendApprovalSummary", ctx, mock.Anything, mock.Anything).Return(nil)

	output, err := f.service.ApproveRegistration(ctx, req.ID, uuid.New())
	require.NoError(t, err)

	slug := output.User.VendorProfile.Slug
	assert.NotEqual(t, "spice-bazaar", slug)
	assert.Contains(t, slug, "spice-bazaar-")
	assert.Len(t, slug, len("spice-bazaar-")+8)
}

func TestAdminService_RejectRegistration(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	req := pendingRequest()
	reviewerID := uuid.New()

	f.registrationRepo.On("MarkReviewed", ctx, req.ID, mock.MatchedBy(func(d *entity.ReviewDecision) bool {
		return d.Status == entity.RegistrationRejected && d.RejectReason == "incomplete GST documents"
	})).Return(nil)
	f.registrationRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	f.mailer.On("SendRejectionNotice", ctx, req).Return(nil)

	err := f.service.RejectRegistration(ctx, &usecase.RejectRegistrationInput{
		RequestID:  req.ID,
		ReviewerID: reviewerID,
		Reason:     "incomplete GST documents",
	})
	require.NoError(t, err)
	f.mailer.AssertExpectations(t)
}

func TestAdminService_RejectRegistration_RequiresReason(t *testing.T) {
	f := newAdminServiceFixture()

	err := f.service.RejectRegistration(context.Background(), &usecase.RejectRegistrationInput{
		RequestID:  uuid.New(),
		ReviewerID: uuid.New(),
		Reason:     "   ",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAdminService_RejectRegistration_AlreadyReviewed(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.registrationRepo.On("MarkReviewed", ctx, requestID, mock.Anything).
		Return(repository.ErrRegistrationNotPending)

	err := f.service.RejectRegistration(ctx, &usecase.RejectRegistrationInput{
		RequestID:  requestID,
		ReviewerID: uuid.New(),
		Reason:     "duplicate entry",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyProcessed)
}

func TestAdminService_ListRegistrations_DefaultsLimit(t *testing.T) {
	f := newAdminServiceFixture()
	ctx := context.Background()

	f.registrationRepo.On("List", ctx, entity.RegistrationPending, 20, 0).
		Return([]*entity.VendorRegistrationRequest{pendingRequest()}, int64(1), nil)

	output, err := f.service.ListRegistrations(ctx, &usecase.ListRegistrationsInput{
		Status: entity.RegistrationPending,
	})
	require.NoError(t, err)
	assert.Len(t, output.Requests, 1)
	assert.Equal(t, int64(1), output.Total)
}
