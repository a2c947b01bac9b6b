package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// expireSweepBatch bounds how many lapsed subscriptions one sweep touches.
const expireSweepBatch = 500

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	gateway          service.PaymentGateway
	mailer           service.Mailer
	notifier         usecase.NotificationUsecase
	gracePeriod      time.Duration
	logger           *slog.Logger
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	OrderRepo        repository.OrderRepository
	Gateway          service.PaymentGateway
	Mailer           service.Mailer
	Notifier         usecase.NotificationUsecase
	Config           *config.Config
	Logger           *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	gracePeriod := time.Duration(0)
	if params.Config != nil && params.Config.Trial != nil {
		gracePeriod = time.Duration(params.Config.Trial.GracePeriodDays) * 24 * time.Hour
	}

	return &subscriptionService{
		subscriptionRepo: params.SubscriptionRepo,
		userRepo:         params.UserRepo,
		productRepo:      params.ProductRepo,
		orderRepo:        params.OrderRepo,
		gateway:          params.Gateway,
		mailer:           params.Mailer,
		notifier:         params.Notifier,
		gracePeriod:      gracePeriod,
		logger:           params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSubscription returns the vendor's subscription with its access verdict.
func (srv *subscriptionService) GetSubscription(ctx context.Context, vendorID uuid.UUID) (*usecase.SubscriptionOutput, error) {
	sub, err := srv.findSubscription(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	return srv.buildOutput(sub, time.Now()), nil
}

// CreateUpgradeOrder registers a payment order for one month of premium.
func (srv *subscriptionService) CreateUpgradeOrder(ctx context.Context, vendorID uuid.UUID) (*usecase.UpgradeOrderOutput, error) {
	sub, err := srv.findSubscription(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if !sub.CanTransition(entity.SubscriptionActive) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("subscription in status %q cannot be activated", sub.Status))
	}

	receipt := fmt.Sprintf("sub_%s_%d", vendorID.String()[:8], time.Now().Unix())

	order, err := srv.gateway.CreateOrder(ctx, entity.PremiumMonthlyPricePaise, entity.CurrencyINR, receipt)
	if err != nil {
		srv.log(ctx).Error("Failed to create gateway order", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create payment order")
	}

	sub.LastOrderID = order.OrderID
	if err := srv.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, errors.Wrap(err, "failed to record payment order on subscription")
	}

	srv.log(ctx).Info("Upgrade order created", slog.Any("vendorID", vendorID), slog.String("orderID", order.OrderID))

	return &usecase.UpgradeOrderOutput{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// ConfirmUpgrade verifies the payment signature and activates a paid period.
func (srv *subscriptionService) ConfirmUpgrade(ctx context.Context, input *usecase.ConfirmUpgradeInput) (*usecase.SubscriptionOutput, error) {
	sub, err := srv.findSubscription(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}

	if sub.LastOrderID == "" || sub.LastOrderID != input.OrderID {
		return nil, domainerrors.ErrPaymentVerification.WithDetails("order does not belong to this subscription")
	}

	if err := srv.gateway.VerifyPayment(input.OrderID, input.PaymentID, input.Signature); err != nil {
		srv.log(ctx).Warn("Payment verification failed",
			slog.Any("vendorID", input.VendorID), slog.String("orderID", input.OrderID), slog.Any("error", err))

		return nil, domainerrors.ErrPaymentVerification
	}

	if !sub.CanTransition(entity.SubscriptionActive) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("subscription in status %q cannot be activated", sub.Status))
	}

	now := time.Now()

	// A renewal paid before the current period lapses extends from the end
	// date, not from the payment instant.
	periodStart := now
	if sub.EndDate.After(now) {
		periodStart = sub.EndDate
	}

	sub.Status = entity.SubscriptionActive
	sub.IsTrial = false
	sub.PlanTier = entity.PlanPremium
	sub.Entitlements = entity.EntitlementsFor(entity.PlanPremium)
	sub.EndDate = periodStart.AddDate(0, 1, 0)
	sub.AutoRenew = true
	sub.LastPaymentID = input.PaymentID

	if err := srv.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, errors.Wrap(err, "failed to activate subscription")
	}

	srv.log(ctx).Info("Subscription activated",
		slog.Any("vendorID", input.VendorID),
		slog.String("paymentID", input.PaymentID),
		slog.Time("endDate", sub.EndDate))

	srv.notifyVendor(ctx, input.VendorID, entity.NotificationVendor,
		"Premium activated", "Your premium plan is active until "+sub.EndDate.Format("2 Jan 2006")+".")

	return srv.buildOutput(sub, now), nil
}

// CancelSubscription turns off auto-renew; access runs until the end date.
func (srv *subscriptionService) CancelSubscription(ctx context.Context, vendorID uuid.UUID) (*usecase.SubscriptionOutput, error) {
	sub, err := srv.findSubscription(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if !sub.CanTransition(entity.SubscriptionCancelled) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("subscription in status %q cannot be cancelled", sub.Status))
	}

	sub.Status = entity.SubscriptionCancelled
	sub.AutoRenew = false

	if err := srv.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, errors.Wrap(err, "failed to cancel subscription")
	}

	srv.log(ctx).Info("Subscription cancelled", slog.Any("vendorID", vendorID), slog.Time("accessUntil", sub.EndDate))

	return srv.buildOutput(sub, time.Now()), nil
}

// CheckEntitlement verifies the vendor's plan covers the feature. Counted
// features compare current usage against the plan cap frozen on the
// subscription.
func (srv *subscriptionService) CheckEntitlement(ctx context.Context, vendorID uuid.UUID, feature usecase.EntitlementFeature) error {
	sub, err := srv.findSubscription(ctx, vendorID)
	if err != nil {
		return err
	}

	if !sub.HasAccess(time.Now(), srv.gracePeriod) {
		return domainerrors.ErrEntitlementExceeded.WithDetails("subscription access has lapsed")
	}

	switch feature {
	case usecase.FeatureAnalytics:
		if !sub.Entitlements.AnalyticsAccess {
			return domainerrors.ErrEntitlementExceeded.WithDetails("the current plan does not include analytics")
		}
	case usecase.FeatureProducts:
		count, err := srv.productRepo.CountByVendor(ctx, vendorID)
		if err != nil {
			return errors.Wrap(err, "failed to count vendor products")
		}
		if count >= int64(sub.Entitlements.MaxProducts) {
			return domainerrors.ErrEntitlementExceeded.WithDetails(
				fmt.Sprintf("the plan allows at most %d products", sub.Entitlements.MaxProducts))
		}
	case usecase.FeatureOrders:
		count, err := srv.orderRepo.CountByVendor(ctx, vendorID)
		if err != nil {
			return errors.Wrap(err, "failed to count vendor orders")
		}
		if count >= int64(sub.Entitlements.MaxOrders) {
			return domainerrors.ErrEntitlementExceeded.WithDetails(
				fmt.Sprintf("the plan allows at most %d orders", sub.Entitlements.MaxOrders))
		}
	default:
		return domainerrors.ErrValidation.WithDetails(fmt.Sprintf("unknown feature %q", feature))
	}

	return nil
}

// ExpireLapsed sweeps subscriptions past their end date. Cancelled
// subscriptions get a grace period first; everything else expires outright.
func (srv *subscriptionService) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	lapsed, err := srv.subscriptionRepo.ListLapsed(ctx, now, expireSweepBatch)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list lapsed subscriptions")
	}

	changed := 0
	for _, sub := range lapsed {
		var next entity.SubscriptionStatus

		switch sub.Status {
		case entity.SubscriptionCancelled:
			next = entity.SubscriptionGracePeriod
		case entity.SubscriptionGracePeriod:
			if now.Before(sub.EndDate.Add(srv.gracePeriod)) {
				continue
			}
			next = entity.SubscriptionExpired
		default:
			next = entity.SubscriptionExpired
		}

		if !sub.CanTransition(next) {
			continue
		}

		sub.Status = next
		if err := srv.subscriptionRepo.Update(ctx, sub); err != nil {
			srv.log(ctx).Error("Failed to update lapsed subscription",
				slog.Any("vendorID", sub.VendorID), slog.Any("error", err))

			continue
		}

		changed++
		srv.notifyLapsed(ctx, sub, next)
	}

	if changed > 0 {
		srv.log(ctx).Info("Expiry sweep finished", slog.Int("changed", changed), slog.Time("asOf", now))
	}

	return changed, nil
}

func (srv *subscriptionService) findSubscription(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSubscription, error) {
	sub, err := srv.subscriptionRepo.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, domainerrors.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by vendor")
	}

	return sub, nil
}

func (srv *subscriptionService) buildOutput(sub *entity.VendorSubscription, now time.Time) *usecase.SubscriptionOutput {
	daysLeft := 0
	if sub.EndDate.After(now) {
		daysLeft = int(sub.EndDate.Sub(now).Hours() / 24)
	}

	return &usecase.SubscriptionOutput{
		Subscription: sub,
		HasAccess:    sub.HasAccess(now, srv.gracePeriod),
		DaysLeft:     daysLeft,
	}
}

// notifyLapsed delivers the in-app and email signals after a sweep moved a
// subscription; failures only log.
func (srv *subscriptionService) notifyLapsed(ctx context.Context, sub *entity.VendorSubscription, next entity.SubscriptionStatus) {
	title := "Subscription expired"
	message := "Your premium access has ended. Renew to restore your storefront features."
	if next == entity.SubscriptionGracePeriod {
		title = "Grace period started"
		message = "Your subscription lapsed. Renew during the grace period to keep your storefront live."
	}

	srv.notifyVendor(ctx, sub.VendorID, entity.NotificationSystem, title, message)

	if sub.IsTrial && next == entity.SubscriptionExpired {
		user, err := srv.userRepo.FindByID(ctx, sub.VendorID)
		if err != nil {
			srv.log(ctx).Warn("Failed to load vendor for expiry email", slog.Any("vendorID", sub.VendorID), slog.Any("error", err))

			return
		}
		if err := srv.mailer.SendTrialExpiryNotice(ctx, user, sub); err != nil {
			srv.log(ctx).Warn("Failed to send trial expiry email", slog.Any("vendorID", sub.VendorID), slog.Any("error", err))
		}
	}
}

func (srv *subscriptionService) notifyVendor(ctx context.Context, vendorID uuid.UUID, typ entity.NotificationType, title, message string) {
	_, err := srv.notifier.Notify(ctx, &usecase.NotifyInput{
		UserID:  vendorID,
		Type:    typ,
		Title:   title,
		Message: message,
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to deliver subscription notification", slog.Any("vendorID", vendorID), slog.Any("error", err))
	}
}
