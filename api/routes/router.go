package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wastewise/wastewise-backend/api/controllers"
	"github.com/wastewise/wastewise-backend/api/middleware"
	"github.com/wastewise/wastewise-backend/internal/cart"
	"github.com/wastewise/wastewise-backend/internal/chat"
	"github.com/wastewise/wastewise-backend/internal/estimator"
	"github.com/wastewise/wastewise-backend/internal/orders"
	"github.com/wastewise/wastewise-backend/internal/pickups"
	"github.com/wastewise/wastewise-backend/internal/rewards"
	"github.com/wastewise/wastewise-backend/pkg/config"
	"github.com/wastewise/wastewise-backend/pkg/db"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/metrics"
	wwredis "github.com/wastewise/wastewise-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *wwredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	cartService cart.Service,
	ordersService orders.Service,
	pickupsService pickups.Service,
	estimatorService estimator.Service,
	chatService chat.Service,
	rewardsService rewards.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	assistantPolicy := middleware.NewRateLimitPolicy(
		"assistant",
		cfg.Limits.AssistantWindow,
		cfg.Limits.AssistantMaxRequests,
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.SessionPing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemName}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{itemName}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(ordersService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderHistory(ordersService, logg))
			r.Get("/{orderId}/tracking", controllers.OrderTrack(ordersService, logg))
		})

		r.Route("/pickups", func(r chi.Router) {
			r.Get("/", controllers.PickupHistory(pickupsService, logg))
			r.Post("/", controllers.PickupSubmit(pickupsService, logg))
			r.Route("/draft", func(r chi.Router) {
				r.Get("/", controllers.PickupDraft(pickupsService, logg))
				r.Delete("/", controllers.PickupCancelDraft(pickupsService, logg))
				r.Post("/details", controllers.PickupSetDetails(pickupsService, logg))
				r.Post("/schedule", controllers.PickupSetSchedule(pickupsService, logg))
				r.Post("/back", controllers.PickupRetreat(pickupsService, logg))
			})
			r.Get("/{trackingId}", controllers.PickupTrack(pickupsService, logg))
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", controllers.EstimateHistory(estimatorService, logg))
			r.With(middleware.RateLimit(assistantPolicy, redisClient, logg)).
				Post("/", controllers.EstimateQuote(estimatorService, logg))
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/messages", controllers.ChatHistory(chatService, logg))
			r.Delete("/messages", controllers.ChatClear(chatService, logg))
			r.With(middleware.RateLimit(assistantPolicy, redisClient, logg)).
				Post("/messages", controllers.ChatSend(chatService, logg))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Get("/", controllers.RewardsBalance(rewardsService, logg))
			r.Post("/redeem", controllers.RewardsRedeem(rewardsService, logg))
		})
	})

	return r
}
