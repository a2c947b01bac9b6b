package impl

import (
	"context"
	"testing"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionServiceFixture struct {
	service          usecase.SubscriptionUsecase
	subscriptionRepo *mockSubscriptionRepo
	userRepo         *mockUserRepo
	productRepo      *mockProductRepo
	orderRepo        *mockOrderRepo
	gateway          *mockGateway
	mailer           *mockMailer
	notifier         *mockNotifier
}

func newSubscriptionServiceFixture() *subscriptionServiceFixture {
	subscriptionRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	productRepo := new(mockProductRepo)
	orderRepo := new(mockOrderRepo)
	gateway := new(mockGateway)
	mailer := new(mockMailer)
	notifier := new(mockNotifier)

	svc := NewSubscriptionService(SubscriptionServiceParams{
		SubscriptionRepo: subscriptionRepo,
		UserRepo:         userRepo,
		ProductRepo:      productRepo,
		OrderRepo:        orderRepo,
		Gateway:          gateway,
		Mailer:           mailer,
		Notifier:         notifier,
		Config: &config.Config{Trial: &config.TrialConfig{
			DurationDays:    20,
			GracePeriodDays: 30,
		}},
		Logger: testLogger(),
	})

	return &subscriptionServiceFixture{
		service:          svc,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		gateway:          gateway,
		mailer:           mailer,
		notifier:         notifier,
	}
}

func trialSubscription(vendorID uuid.UUID) *entity.VendorSubscription {
	return entity.NewTrialSubscription(vendorID, time.Now().Add(-24*time.Hour), 20)
}

func TestSubscriptionService_GetSubscription_TrialHasAccess(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)

	output, err := f.service.GetSubscription(ctx, vendorID)
	require.NoError(t, err)
	assert.True(t, output.HasAccess)
	assert.Equal(t, 18, output.DaysLeft)
}

func TestSubscriptionService_CreateUpgradeOrder(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)
	f.gateway.On("CreateOrder", ctx, int64(entity.PremiumMonthlyPricePaise), entity.CurrencyINR, mock.AnythingOfType("string")).
		Return(&service.GatewayOrder{
			OrderID:  "order_ABC123",
			Amount:   entity.PremiumMonthlyPricePaise,
			Currency: entity.CurrencyINR,
		}, nil)
	f.subscriptionRepo.On("Update", ctx, mock.MatchedBy(func(s *entity.VendorSubscription) bool {
		return s.LastOrderID == "order_ABC123"
	})).Return(nil)

	output, err := f.service.CreateUpgradeOrder(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, "order_ABC123", output.OrderID)
	assert.Equal(t, int64(entity.PremiumMonthlyPricePaise), output.Amount)
}

func TestSubscriptionService_ConfirmUpgrade_ActivatesFromTrial(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)
	sub.LastOrderID = "order_ABC123"
	trialEnd := sub.EndDate

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)
	f.gateway.On("VerifyPayment", "order_ABC123", "pay_XYZ", "sig").Return(nil)
	f.subscriptionRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.notifier.On("Notify", ctx, mock.Anything).Return(&entity.Notification{}, nil)

	output, err := f.service.ConfirmUpgrade(ctx, &usecase.ConfirmUpgradeInput{
		VendorID:  vendorID,
		OrderID:   "order_ABC123",
		PaymentID: "pay_XYZ",
		Signature: "sig",
	})
	require.NoError(t, err)

	got := output.Subscription
	assert.Equal(t, entity.SubscriptionActive, got.Status)
	assert.False(t, got.IsTrial)
	assert.True(t, got.AutoRenew)
	assert.Equal(t, "pay_XYZ", got.LastPaymentID)
	// The paid month stacks on the remaining trial window.
	assert.Equal(t, trialEnd.AddDate(0, 1, 0), got.EndDate)
	assert.True(t, output.HasAccess)
}

func TestSubscriptionService_ConfirmUpgrade_BadSignature(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)
	sub.LastOrderID = "order_ABC123"

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)
	f.gateway.On("VerifyPayment", "order_ABC123", "pay_XYZ", "forged").
		Return(errors.New("signature mismatch"))

	output, err := f.service.ConfirmUpgrade(ctx, &usecase.ConfirmUpgradeInput{
		VendorID:  vendorID,
		OrderID:   "order_ABC123",
		PaymentID: "pay_XYZ",
		Signature: "forged",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentVerification)

	f.subscriptionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubscriptionService_ConfirmUpgrade_UnknownOrder(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)
	sub.LastOrderID = "order_ABC123"

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)

	_, err := f.service.ConfirmUpgrade(ctx, &usecase.ConfirmUpgradeInput{
		VendorID:  vendorID,
		OrderID:   "order_OTHER",
		PaymentID: "pay_XYZ",
		Signature: "sig",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAYMENT_VERIFICATION_FAILED", appErr.ErrorCode())
	f.gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_CancelSubscription(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	sub := trialSubscription(vendorID)
	sub.Status = entity.SubscriptionActive
	sub.IsTrial = false
	sub.AutoRenew = true

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)
	f.subscriptionRepo.On("Update", ctx, mock.Anything).Return(nil)

	output, err := f.service.CancelSubscription(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionCancelled, output.Subscription.Status)
	assert.False(t, output.Subscription.AutoRenew)
	// Access holds until the paid period's end date.
	assert.True(t, output.HasAccess)
}

func TestSubscriptionService_CancelSubscription_TrialCannotCancel(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(trialSubscription(vendorID), nil)

	_, err := f.service.CancelSubscription(ctx, vendorID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TRANSITION", appErr.ErrorCode())
}

func TestSubscriptionService_CheckEntitlement_BasicPlanHasNoAnalytics(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	sub := trialSubscription(vendorID)
	sub.Status = entity.SubscriptionActive
	sub.IsTrial = false
	sub.PlanTier = entity.PlanBasic
	sub.Entitlements = entity.EntitlementsFor(entity.PlanBasic)

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)

	err := f.service.CheckEntitlement(ctx, vendorID, usecase.FeatureAnalytics)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ENTITLEMENT_EXCEEDED", appErr.ErrorCode())
}

func TestSubscriptionService_CheckEntitlement_PremiumAnalyticsAllowed(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(trialSubscription(vendorID), nil)

	require.NoError(t, f.service.CheckEntitlement(ctx, vendorID, usecase.FeatureAnalytics))
}

func TestSubscriptionService_CheckEntitlement_ProductCapExhausted(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	sub := trialSubscription(vendorID)

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)
	f.productRepo.On("CountByVendor", ctx, vendorID).Return(int64(sub.Entitlements.MaxProducts), nil)

	err := f.service.CheckEntitlement(ctx, vendorID, usecase.FeatureProducts)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ENTITLEMENT_EXCEEDED", appErr.ErrorCode())
}

func TestSubscriptionService_CheckEntitlement_UnderOrderCap(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(trialSubscription(vendorID), nil)
	f.orderRepo.On("CountByVendor", ctx, vendorID).Return(int64(3), nil)

	require.NoError(t, f.service.CheckEntitlement(ctx, vendorID, usecase.FeatureOrders))
}

func TestSubscriptionService_CheckEntitlement_LapsedAccessDenied(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	vendorID := uuid.New()

	sub := trialSubscription(vendorID)
	sub.Status = entity.SubscriptionExpired

	f.subscriptionRepo.On("FindByVendorID", ctx, vendorID).Return(sub, nil)

	err := f.service.CheckEntitlement(ctx, vendorID, usecase.FeatureProducts)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ENTITLEMENT_EXCEEDED", appErr.ErrorCode())
	f.productRepo.AssertNotCalled(t, "CountByVendor", mock.Anything, mock.Anything)
}

func TestSubscriptionService_ExpireLapsed(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	now := time.Now()

	lapsedTrial := entity.NewTrialSubscription(uuid.New(), now.AddDate(0, 0, -21), 20)

	cancelled := entity.NewTrialSubscription(uuid.New(), now.AddDate(0, 0, -25), 20)
	cancelled.Status = entity.SubscriptionCancelled
	cancelled.IsTrial = false

	f.subscriptionRepo.On("ListLapsed", ctx, now, expireSweepBatch).
		Return([]*entity.VendorSubscription{lapsedTrial, cancelled}, nil)
	f.subscriptionRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.notifier.On("Notify", ctx, mock.Anything).Return(&entity.Notification{}, nil)
	f.userRepo.On("FindByID", ctx, lapsedTrial.VendorID).
		Return(&entity.User{ID: lapsedTrial.VendorID, Email: "v@example.com"}, nil)
	f.mailer.On("SendTrialExpiryNotice", ctx, mock.Anything, mock.Anything).Return(nil)

	changed, err := f.service.ExpireLapsed(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	assert.Equal(t, entity.SubscriptionExpired, lapsedTrial.Status)
	assert.Equal(t, entity.SubscriptionGracePeriod, cancelled.Status)
	f.mailer.AssertExpectations(t)
}

func TestSubscriptionService_ExpireLapsed_GraceWindowHolds(t *testing.T) {
	f := newSubscriptionServiceFixture()
	ctx := context.Background()
	now := time.Now()

	// Lapsed ten days ago with a thirty-day grace window: stays put.
	inGrace := entity.NewTrialSubscription(uuid.New(), now.AddDate(0, 0, -30), 20)
	inGrace.Status = entity.SubscriptionGracePeriod

	f.subscriptionRepo.On("ListLapsed", ctx, now, expireSweepBatch).
		Return([]*entity.VendorSubscription{inGrace}, nil)

	changed, err := f.service.ExpireLapsed(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
	assert.Equal(t, entity.SubscriptionGracePeriod, inGrace.Status)
	f.subscriptionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
