package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mpalmerin/storefront-backend/api/controllers"
	"github.com/mpalmerin/storefront-backend/api/middleware"
	"github.com/mpalmerin/storefront-backend/internal/orders"
	"github.com/mpalmerin/storefront-backend/internal/products"
	"github.com/mpalmerin/storefront-backend/internal/users"
	"github.com/mpalmerin/storefront-backend/pkg/config"
	"github.com/mpalmerin/storefront-backend/pkg/db"
	"github.com/mpalmerin/storefront-backend/pkg/logger"
	"github.com/mpalmerin/storefront-backend/pkg/metrics"
	"github.com/mpalmerin/storefront-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Params carries every dependency the HTTP surface needs.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Users    users.Service
	Products products.Service
	Orders   orders.Service

	// RateLimiter is optional; login throttling switches off without it.
	RateLimiter *redis.Client

	// Registry is optional; a nil registry disables the metrics endpoint.
	Registry *prometheus.Registry
}

// New assembles the full router: health and metrics endpoints, public
// registration and login, and the token-protected resource routes.
func New(p Params) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(p.Logger))
	r.Use(middleware.RequestID(p.Logger))
	r.Use(middleware.Logging(p.Logger))
	r.Use(middleware.CORS())

	if p.Registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(p.Registry)
		r.Use(httpMetrics.Middleware())
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/health/live", controllers.HealthLive(p.Config))
	r.Get("/health/ready", controllers.HealthReady(p.Config, p.Logger, p.DB))

	// Public: account creation and credential exchange.
	r.Post("/users", controllers.Register(p.Users, p.Logger))

	login := http.Handler(controllers.Login(p.Users, p.Logger))
	if p.RateLimiter != nil {
		policy := middleware.NewAuthRateLimitPolicy(
			"login",
			p.Config.AuthRateLimit.LoginWindow,
			p.Config.AuthRateLimit.LoginIPLimit,
			p.Config.AuthRateLimit.LoginUserLimit,
		)
		login = middleware.AuthRateLimit(policy, p.RateLimiter, p.Logger)(login)
	}
	r.Method(http.MethodPost, "/users/login", login)

	// Everything else requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Logger))

		r.Get("/users", controllers.ListUsers(p.Users, p.Logger))
		r.Get("/users/{id}", controllers.GetUser(p.Users, p.Logger))

		r.Post("/products", controllers.CreateProduct(p.Products, p.Logger))
		r.Get("/products", controllers.ListProducts(p.Products, p.Logger))
		r.Post("/products/category", controllers.AddCategory(p.Products, p.Logger))
		r.Get("/products/category/{id}", controllers.ListProductsByCategory(p.Products, p.Logger))
		r.Get("/products/{id}", controllers.GetProduct(p.Products, p.Logger))

		r.Post("/orders", controllers.CreateOrder(p.Orders, p.Logger))
		r.Get("/orders/user/{id}", controllers.ListUserOrders(p.Orders, p.Logger))
		r.Put("/orders/{id}/products", controllers.AddProductToOrder(p.Orders, p.Logger))
		r.Get("/orders/{id}/products", controllers.ListOrderProducts(p.Orders, p.Logger))
	})

	return r
}
