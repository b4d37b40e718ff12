package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanis004/WebServices/internal/store/service"
	"github.com/yanis004/WebServices/internal/store/upstream/freetogame"
	"github.com/yanis004/WebServices/pkg/health"
	"github.com/yanis004/WebServices/pkg/middleware"
)

// RouterDeps bundles everything the store router needs.
type RouterDeps struct {
	Products      *service.ProductService
	Orders        *service.OrderService
	Reviews       *service.ReviewService
	Users         *service.UserService
	Games         *freetogame.Client
	HealthHandler *health.Handler
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all store service routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("store"))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(deps.Products, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.Logger)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Logger)
	userHandler := NewUserHandler(deps.Users, deps.Logger)
	gamesHandler := NewGamesHandler(deps.Games, deps.Logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", productHandler.CreateProduct)
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Put("/{id}", orderHandler.UpdateOrder)
		r.Patch("/{id}", orderHandler.UpdateOrder)
		r.Delete("/{id}", orderHandler.DeleteOrder)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", reviewHandler.CreateReview)
		r.Get("/{id}", reviewHandler.GetReview)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Patch("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.ReplaceUser)
		r.Patch("/{id}", userHandler.PatchUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	r.Route("/f2p-games", func(r chi.Router) {
		r.Get("/", gamesHandler.ListGames)
		r.Get("/{id}", gamesHandler.GetGame)
	})

	return r
}
