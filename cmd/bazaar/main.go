package main

import (
	"context"
	"log/slog"
	"os"

	"bazaar/config"
	"bazaar/internal/delivery"
	"bazaar/internal/delivery/http"
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/delivery/ws"
	"bazaar/internal/domain/service"
	"bazaar/internal/infra/auth"
	"bazaar/internal/infra/cache"
	logs "bazaar/internal/infra/log"
	"bazaar/internal/infra/mail"
	"bazaar/internal/infra/payment"
	"bazaar/internal/infra/persistence/postgres"
	"bazaar/internal/infra/qrcode"
	"bazaar/internal/infra/sched"
	"bazaar/internal/infra/storage"
	"bazaar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
	Scheduler  *sched.Scheduler
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.NewClient,
		sched.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewRegistrationRepository,
			postgres.NewUserRepository,
			postgres.NewVendorRepository,
			postgres.NewSubscriptionRepository,
			postgres.NewNotificationRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewChatRepository,
			postgres.NewAnalyticsRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			cache.NewRedisCache,
			mail.NewSMTPMailer,
			payment.NewRazorpayGateway,
			storage.NewBlobStore,
			qrcode.NewQRCodeService,
			ws.NewHub,
			newEventBroadcaster,
		),
	)
}

// newEventBroadcaster exposes the websocket hub to the use cases behind the
// domain interface.
func newEventBroadcaster(hub *ws.Hub) service.EventBroadcaster {
	return hub
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRegistrationService,
			impl.NewAuthService,
			impl.NewAdminService,
			impl.NewSubscriptionService,
			impl.NewAnalyticsService,
			impl.NewSearchService,
			impl.NewVendorService,
			impl.NewNotificationService,
			impl.NewChatService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRegistrationHandler,
			handler.NewAuthHandler,
			handler.NewAdminHandler,
			handler.NewSubscriptionHandler,
			handler.NewAnalyticsHandler,
			handler.NewSearchHandler,
			handler.NewNotificationHandler,
			handler.NewChatHandler,
			handler.NewVendorHandler,
			ws.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
