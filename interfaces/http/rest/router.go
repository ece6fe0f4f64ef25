package rest

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/application/services"
	"novamarket/infrastructure/config"
	"novamarket/interfaces/http/rest/handlers"
	"novamarket/interfaces/http/rest/middleware"
	"novamarket/pkg/common"
	"novamarket/pkg/ratelimit"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	products *services.ProductService
	checkout ports.CheckoutProvider
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	products *services.ProductService,
	checkout ports.CheckoutProvider,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		products: products,
		checkout: checkout,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Per-IP budgets: a general one for all API routes and a stricter one
	// stacked on top of it for writes
	apiLimit := middleware.RateLimit(
		ratelimit.NewIPRateLimiter(rt.cfg.APIRateLimit, rt.cfg.RateLimitWindow),
		"Too many requests from this IP, please try again later.",
		rt.logger,
	)
	writeLimit := middleware.RateLimit(
		ratelimit.NewIPRateLimiter(rt.cfg.WriteRateLimit, rt.cfg.RateLimitWindow),
		"Too many write requests from this IP, please try again later.",
		rt.logger,
	)

	productHandler := handlers.NewProductHandler(rt.products, rt.logger)
	checkoutHandler := handlers.NewCheckoutHandler(rt.checkout, rt.logger)
	healthHandler := handlers.NewHealthHandler(rt.products, rt.logger)
	authHandler := handlers.NewAuthHandler(rt.cfg, rt.logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, rt.cfg.JWTIssuer))

		// Product endpoints
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
			r.With(writeLimit).Post("/", productHandler.CreateProduct)
			r.With(writeLimit).Put("/{id}", productHandler.UpdateProduct)
			r.With(writeLimit).Delete("/{id}", productHandler.DeleteProduct)
		})

		// Checkout
		r.With(writeLimit).Post("/create-checkout-session", checkoutHandler.CreateCheckoutSession)

		// Session endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/status", authHandler.Status)
		})

		// Health check
		r.Get("/health", healthHandler.Health)
	})

	// 404 handler
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, http.StatusNotFound, "Not found",
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
	})

	return router
}
