package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/easyjatra/marketplace-api/internal/api/handler"
	"github.com/easyjatra/marketplace-api/internal/api/middleware"
	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed explicitly
// at startup and injected here; no package-level state.
type Dependencies struct {
	Tickets  ports.TicketService
	Checkout ports.CheckoutService
	Orders   ports.OrderQueryService
	Users    ports.UserService
	Vendors  ports.VendorService
	Verifier ports.TokenVerifier

	Mongo *mongo.Database
	Redis *redis.Client

	ClientOrigin string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Handlers ---
	ticketHandler := handler.NewTicketHandler(deps.Tickets)
	paymentHandler := handler.NewPaymentHandler(deps.Checkout, deps.Orders)
	userHandler := handler.NewUserHandler(deps.Users)
	vendorHandler := handler.NewVendorHandler(deps.Vendors)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	auth := middleware.Auth(deps.Verifier)
	vendorOnly := middleware.RequireRole(deps.Users, domain.RoleVendor)
	adminOnly := middleware.RequireRole(deps.Users, domain.RoleAdmin)

	// --- Tickets ---
	e.GET("/tickets", ticketHandler.List)
	e.GET("/tickets/:id", ticketHandler.Get)
	e.POST("/tickets", ticketHandler.Create, auth, vendorOnly)
	e.GET("/my-inventory/:email", ticketHandler.Inventory, auth, vendorOnly)

	// --- Payments and orders ---
	e.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	e.POST("/payment-success", paymentHandler.PaymentSuccess)
	e.GET("/my-orders", paymentHandler.MyOrders, auth)
	e.GET("/vendor-orders/:email", paymentHandler.VendorOrders)
	e.GET("/manage-orders/:email", paymentHandler.VendorOrders, auth, vendorOnly)

	// --- Users ---
	e.POST("/user", userHandler.Sync)
	e.GET("/user/role", userHandler.Role, auth)
	e.GET("/users", userHandler.List, auth, adminOnly)
	e.PATCH("/update-role", userHandler.UpdateRole, auth, adminOnly)

	// --- Vendor onboarding ---
	e.POST("/become-vendor", vendorHandler.BecomeVendor, auth)
	e.GET("/vendor-request", vendorHandler.ListRequests, auth, adminOnly)

	// --- Operational ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
