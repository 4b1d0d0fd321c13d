package router

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mysticmart/internal/adapter/oauth"
	"github.com/polkiloo/mysticmart/internal/config"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/handlers"
	"github.com/polkiloo/mysticmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, provider oauth.Provider, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	session := handlers.SessionSettings{
		TTL:    cfg.SessionTTL,
		Secure: strings.HasPrefix(cfg.BaseURL, "https://"),
	}
	if cfg.BaseURL != "" {
		session.RedirectURL = cfg.BaseURL + "/account"
	}

	customers := middleware.ResolverFunc(facade.ResolveCustomer)
	admins := middleware.ResolverFunc(facade.ResolveAdmin)
	requireCustomer := middleware.RequirePrincipal(customers, model.DomainCustomer)
	requireAdmin := middleware.RequirePrincipal(admins, model.DomainAdmin)
	requireStaffRole := middleware.RequireRole(model.RoleAdmin)

	authHandler := handlers.NewAuthHandler(facade, provider, session)
	adminAuthHandler := handlers.NewAdminAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	bookingHandler := handlers.NewBookingHandler(facade)
	messageHandler := handlers.NewMessageHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	engine.GET("/health", handlers.Health)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", middleware.OptionalPrincipal(customers, model.DomainCustomer), authHandler.Logout)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", requireCustomer, authHandler.Me)
	auth.GET("/verify-email", authHandler.VerifyEmail)
	auth.GET("/google", authHandler.GoogleBegin)
	auth.GET("/google/callback", authHandler.GoogleCallback)

	api.GET("/products", catalogHandler.Products)
	api.POST("/products", requireAdmin, catalogHandler.CreateProduct)
	api.PUT("/products", requireAdmin, catalogHandler.UpdateProduct)
	api.DELETE("/products", requireAdmin, catalogHandler.DeleteProduct)
	api.GET("/services", catalogHandler.Services)
	api.GET("/courses", catalogHandler.Courses)

	cart := api.Group("/cart", requireCustomer)
	cart.GET("", cartHandler.List)
	cart.POST("", cartHandler.Add)
	cart.PUT("", cartHandler.Update)
	cart.DELETE("", cartHandler.Delete)

	orders := api.Group("/orders", requireCustomer)
	orders.GET("", orderHandler.List)
	orders.POST("", checkoutHandler.PlaceOrder)
	orders.PUT("", orderHandler.UpdateStatus)
	orders.DELETE("", orderHandler.Delete)
	orders.GET("/tracking", orderHandler.Tracking)
	orders.POST("/tracking", requireStaffRole, orderHandler.AppendTracking)
	orders.PUT("/tracking", requireStaffRole, orderHandler.EditTracking)

	sessions := api.Group("/sessions")
	sessions.POST("", middleware.OptionalPrincipal(customers, model.DomainCustomer), checkoutHandler.BookSession)
	sessions.GET("", requireCustomer, bookingHandler.Mine)
	sessions.PUT("", requireCustomer, bookingHandler.Reschedule)
	sessions.DELETE("", requireCustomer, bookingHandler.Cancel)

	razorpay := api.Group("/razorpay", middleware.OptionalPrincipal(customers, model.DomainCustomer))
	razorpay.POST("/create-order", checkoutHandler.CreateOrder)
	razorpay.POST("/verify-payment", checkoutHandler.VerifyPayment)

	api.POST("/contact", messageHandler.Submit)

	admin := api.Group("/admin")
	admin.POST("/auth/login", adminAuthHandler.Login)

	back := admin.Group("", requireAdmin)
	back.POST("/auth/logout", adminAuthHandler.Logout)
	back.GET("/auth/me", adminAuthHandler.Me)

	back.GET("/orders", orderHandler.List)
	back.PUT("/orders", orderHandler.UpdateStatus)
	back.DELETE("/orders", orderHandler.Delete)
	back.GET("/orders/tracking", orderHandler.Tracking)
	back.POST("/orders/tracking", orderHandler.AppendTracking)
	back.PUT("/orders/tracking", orderHandler.EditTracking)

	back.GET("/products", adminCatalogHandler.Products)
	back.POST("/products", adminCatalogHandler.CreateProduct)
	back.PUT("/products", adminCatalogHandler.UpdateProduct)
	back.DELETE("/products", adminCatalogHandler.DeleteProduct)
	back.GET("/services", adminCatalogHandler.Services)
	back.POST("/services", adminCatalogHandler.CreateService)
	back.PUT("/services", adminCatalogHandler.UpdateService)
	back.DELETE("/services", adminCatalogHandler.DeleteService)
	back.GET("/courses", adminCatalogHandler.Courses)
	back.POST("/courses", adminCatalogHandler.CreateCourse)
	back.PUT("/courses", adminCatalogHandler.UpdateCourse)
	back.DELETE("/courses", adminCatalogHandler.DeleteCourse)

	back.GET("/users", adminHandler.Users)
	back.PUT("/users", adminHandler.SetRole)
	back.DELETE("/users", adminHandler.DeleteUser)

	back.GET("/bookings", bookingHandler.Bookings)
	back.PUT("/bookings", bookingHandler.SetBookingStatus)
	back.DELETE("/bookings", bookingHandler.DeleteBooking)
	back.GET("/enrollments", bookingHandler.Enrollments)
	back.PUT("/enrollments", bookingHandler.SetEnrollmentStatus)

	back.GET("/contact-messages", messageHandler.List)
	back.PUT("/contact-messages", messageHandler.MarkRead)
	back.DELETE("/contact-messages", messageHandler.Delete)

	back.GET("/stats", adminHandler.Stats)

	return engine
}
