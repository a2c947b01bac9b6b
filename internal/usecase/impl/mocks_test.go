package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify doubles for the repository and service interfaces the
// use case tests exercise.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repositories ---

type mockRegistrationRepo struct{ mock.Mock }

func (m *mockRegistrationRepo) Create(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorRegistrationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorRegistrationRequest), args.Error(1)
}

func (m *mockRegistrationRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.VendorRegistrationRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorRegistrationRequest), args.Error(1)
}

func (m *mockRegistrationRepo) List(ctx context.Context, status entity.RegistrationStatus, limit, offset int) ([]*entity.VendorRegistrationRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	var requests []*entity.VendorRegistrationRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]*entity.VendorRegistrationRequest)
	}

	return requests, args.Get(1).(int64), args.Error(2)
}

func (m *mockRegistrationRepo) MarkReviewed(ctx context.Context, id uuid.UUID, review *entity.ReviewDecision) error {
	return m.Called(ctx, id, review).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

type mockVendorRepo struct{ mock.Mock }

func (m *mockVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorProfile), args.Error(1)
}

func (m *mockVendorRepo) FindBySlug(ctx context.Context, slug string) (*entity.VendorProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorProfile), args.Error(1)
}

func (m *mockVendorRepo) Search(ctx context.Context, query *repository.VendorQuery) ([]*entity.VendorProfile, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.VendorProfile), args.Error(1)
}

func (m *mockVendorRepo) UpdateProfile(ctx context.Context, profile *entity.VendorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockSubscriptionRepo struct{ mock.Mock }

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *entity.VendorSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepo) FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSubscription, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorSubscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, sub *entity.VendorSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepo) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*entity.VendorSubscription, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.VendorSubscription), args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, onlyUnread, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Search(ctx context.Context, query *repository.ProductQuery) ([]*entity.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepo) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) TopByViews(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, vendorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepo) SumViews(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOrderRepo) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) TotalsForVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*repository.VendorTotals, error) {
	args := m.Called(ctx, vendorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.VendorTotals), args.Error(1)
}

func (m *mockOrderRepo) DailyBuckets(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*repository.DayBucket, error) {
	args := m.Called(ctx, vendorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.DayBucket), args.Error(1)
}

type mockChatRepo struct{ mock.Mock }

func (m *mockChatRepo) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	return m.Called(ctx, conversation).Error(0)
}

func (m *mockChatRepo) FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockChatRepo) FindConversationByParticipants(ctx context.Context, customerID, vendorID uuid.UUID) (*entity.Conversation, error) {
	args := m.Called(ctx, customerID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockChatRepo) ListConversationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Conversation), args.Error(1)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockChatRepo) ListMessages(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.ChatMessage), args.Error(1)
}

type mockAnalyticsRepo struct{ mock.Mock }

func (m *mockAnalyticsRepo) UpsertDay(ctx context.Context, rollup *entity.AnalyticsRollup) error {
	return m.Called(ctx, rollup).Error(0)
}

func (m *mockAnalyticsRepo) ListRange(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.AnalyticsRollup, error) {
	args := m.Called(ctx, vendorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.AnalyticsRollup), args.Error(1)
}

func (m *mockAnalyticsRepo) ActiveVendorIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// --- transaction manager ---

// fakeTxManager invokes the callback directly with a fixed factory, so unit
// tests exercise the transactional flow without a database. An error from
// the callback surfaces exactly as a rolled-back transaction would.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

func (f *fakeRepoFactory) NewRegistrationRepository() repository.RegistrationRepository {
	return f.registrationRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepoFactory) NewSubscriptionRepository() repository.SubscriptionRepository {
	return f.subscriptionRepo
}

// --- domain services ---

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendRegistrationReceived(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMailer) SendAdminReviewAlert(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMailer) SendApprovalWelcome(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	return m.Called(ctx, user, sub).Error(0)
}

func (m *mockMailer) SendApprovalSummary(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	return m.Called(ctx, user, sub).Error(0)
}

func (m *mockMailer) SendRejectionNotice(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMailer) SendTrialExpiryNotice(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	return m.Called(ctx, user, sub).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*service.GatewayOrder, error) {
	args := m.Called(ctx, amountPaise, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.GatewayOrder), args.Error(1)
}

func (m *mockGateway) VerifyPayment(orderID, paymentID, signature string) error {
	return m.Called(orderID, paymentID, signature).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)

	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

// passthroughCache is a no-op cache for tests that only care about the
// database path.
type passthroughCache struct{}

func (passthroughCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (passthroughCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (passthroughCache) Delete(context.Context, string) error         { return nil }
func (passthroughCache) DeleteByPrefix(context.Context, string) error { return nil }

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)

	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockQRCodeService struct{ mock.Mock }

func (m *mockQRCodeService) GenerateStorefrontQR(slug string) ([]byte, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// fakeBroadcaster records broadcasts and reports configurable presence.
type fakeBroadcaster struct {
	events   map[string][]*service.Event
	presence map[string]bool
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{
		events:   make(map[string][]*service.Event),
		presence: make(map[string]bool),
	}
}

func (f *fakeBroadcaster) Broadcast(room string, event *service.Event) {
	f.events[room] = append(f.events[room], event)
}

func (f *fakeBroadcaster) HasListeners(room string) bool {
	return f.presence[room]
}

type mockSubscriptionUC struct{ mock.Mock }

func (m *mockSubscriptionUC) GetSubscription(ctx context.Context, vendorID uuid.UUID) (*usecase.SubscriptionOutput, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SubscriptionOutput), args.Error(1)
}

func (m *mockSubscriptionUC) CreateUpgradeOrder(ctx context.Context, vendorID uuid.UUID) (*usecase.UpgradeOrderOutput, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.UpgradeOrderOutput), args.Error(1)
}

func (m *mockSubscriptionUC) ConfirmUpgrade(ctx context.Context, input *usecase.ConfirmUpgradeInput) (*usecase.SubscriptionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SubscriptionOutput), args.Error(1)
}

func (m *mockSubscriptionUC) CancelSubscription(ctx context.Context, vendorID uuid.UUID) (*usecase.SubscriptionOutput, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SubscriptionOutput), args.Error(1)
}

func (m *mockSubscriptionUC) CheckEntitlement(ctx context.Context, vendorID uuid.UUID, feature usecase.EntitlementFeature) error {
	return m.Called(ctx, vendorID, feature).Error(0)
}

func (m *mockSubscriptionUC) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)

	return args.Int(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, input *usecase.NotifyInput) (*entity.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *mockNotifier) ListNotifications(ctx context.Context, input *usecase.ListNotificationsInput) (*usecase.ListNotificationsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ListNotificationsOutput), args.Error(1)
}

func (m *mockNotifier) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return m.Called(ctx, notificationID, userID).Error(0)
}

func (m *mockNotifier) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
