// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/delivery/ws"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RegistrationHandler *handler.RegistrationHandler
	AuthHandler         *handler.AuthHandler
	AdminHandler        *handler.AdminHandler
	SubscriptionHandler *handler.SubscriptionHandler
	AnalyticsHandler    *handler.AnalyticsHandler
	SearchHandler       *handler.SearchHandler
	NotificationHandler *handler.NotificationHandler
	ChatHandler         *handler.ChatHandler
	VendorHandler       *handler.VendorHandler
	WSHandler           *ws.Handler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	registrationHandler *handler.RegistrationHandler
	authHandler         *handler.AuthHandler
	adminHandler        *handler.AdminHandler
	subscriptionHandler *handler.SubscriptionHandler
	analyticsHandler    *handler.AnalyticsHandler
	searchHandler       *handler.SearchHandler
	notificationHandler *handler.NotificationHandler
	chatHandler         *handler.ChatHandler
	vendorHandler       *handler.VendorHandler
	wsHandler           *ws.Handler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		registrationHandler: params.RegistrationHandler,
		authHandler:         params.AuthHandler,
		adminHandler:        params.AdminHandler,
		subscriptionHandler: params.SubscriptionHandler,
		analyticsHandler:    params.AnalyticsHandler,
		searchHandler:       params.SearchHandler,
		notificationHandler: params.NotificationHandler,
		chatHandler:         params.ChatHandler,
		vendorHandler:       params.VendorHandler,
		wsHandler:           params.WSHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	// Public vendor registration intake
	registerGroup := e.Group("/vendor-registration")
	{
		registerGroup.POST("/submit", r.registrationHandler.SubmitRegistration)
		registerGroup.GET("/status", r.registrationHandler.GetRegistrationStatus)
	}

	// Public marketplace surface
	e.GET("/search/vendors", r.searchHandler.SearchVendors)
	e.GET("/search/products", r.searchHandler.SearchProducts)
	e.GET("/store/:slug", r.vendorHandler.GetStorefront)
	e.GET("/store/:slug/qr", r.vendorHandler.GetStorefrontQR)

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole("admin"))
	{
		adminGroup.GET("/vendor-registrations", r.adminHandler.ListRegistrations)
		adminGroup.GET("/vendor-registrations/:id", r.adminHandler.GetRegistration)
		adminGroup.POST("/vendor-registrations/:id/approve", r.adminHandler.ApproveRegistration)
		adminGroup.POST("/vendor-registrations/:id/reject", r.adminHandler.RejectRegistration)
		adminGroup.GET("/dashboard", r.analyticsHandler.GetDashboard)
	}

	// Vendor self-service routes that require the "vendor" role
	vendorGroup := e.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.Authenticate)
	vendorGroup.Use(r.authMiddleware.RequireRole("vendor"))
	{
		vendorGroup.GET("/subscription", r.subscriptionHandler.GetSubscription)
		vendorGroup.POST("/subscription/upgrade", r.subscriptionHandler.CreateUpgradeOrder)
		vendorGroup.POST("/subscription/upgrade/confirm", r.subscriptionHandler.ConfirmUpgrade)
		vendorGroup.POST("/subscription/cancel", r.subscriptionHandler.CancelSubscription)
		vendorGroup.GET("/dashboard", r.analyticsHandler.GetDashboard)
		vendorGroup.PATCH("/profile", r.vendorHandler.UpdateProfile)
		vendorGroup.POST("/assets", r.vendorHandler.UploadAsset)
	}

	// Notification inbox for any authenticated user
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.ListNotifications)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkRead)
		notificationGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
	}

	// Customer-vendor chat for any authenticated user
	chatGroup := e.Group("/chat")
	chatGroup.Use(r.authMiddleware.Authenticate)
	{
		chatGroup.POST("/conversations", r.chatHandler.StartConversation)
		chatGroup.GET("/conversations", r.chatHandler.ListConversations)
		chatGroup.GET("/conversations/:id/messages", r.chatHandler.ListMessages)
		chatGroup.POST("/conversations/:id/messages", r.chatHandler.SendMessage)
	}

	// Websocket endpoint; authenticates inside the handler via token param.
	e.GET("/ws", r.wsHandler.Serve)
}
