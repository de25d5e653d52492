package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kolade-dev/vendorhub-backend/api/controllers"
	"github.com/kolade-dev/vendorhub-backend/api/middleware"
	"github.com/kolade-dev/vendorhub-backend/internal/bookings"
	"github.com/kolade-dev/vendorhub-backend/internal/invoices"
	"github.com/kolade-dev/vendorhub-backend/internal/ledger"
	products "github.com/kolade-dev/vendorhub-backend/internal/products"
	"github.com/kolade-dev/vendorhub-backend/pkg/config"
	"github.com/kolade-dev/vendorhub-backend/pkg/db"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
	"github.com/kolade-dev/vendorhub-backend/pkg/metrics"
	pkgredis "github.com/kolade-dev/vendorhub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	productService products.Service,
	bookingService bookings.Service,
	invoiceService invoices.Service,
	ledgerService ledger.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
	)

	var idempotencyStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		idempotencyStore = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(redisClient, cfg.RateLimit.RequestsPerMinute, time.Minute, logg))

		// Stateless cart preview; no merchant scope required.
		r.Post("/cart/quote", controllers.CartQuote(invoiceService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.MerchantContext(logg))
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(productService, logg))
				r.Get("/", controllers.ProductList(productService, logg))
				r.Get("/{productId}", controllers.ProductGet(productService, logg))
				r.Patch("/{productId}", controllers.ProductUpdate(productService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
				r.Put("/{productId}/tiers", controllers.ProductReplaceTiers(productService, logg))
				r.Get("/{productId}/quote", controllers.ProductQuote(productService, logg))
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", controllers.RoomCreate(bookingService, logg))
				r.Get("/", controllers.RoomList(bookingService, logg))
				r.Get("/{roomId}", controllers.RoomGet(bookingService, logg))
				r.Get("/{roomId}/disabled-dates", controllers.RoomDisabledDates(bookingService, logg))
				r.Get("/{roomId}/quote", controllers.RoomQuoteStay(bookingService, logg))
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Post("/", controllers.ReservationCreate(bookingService, logg))
				r.Get("/", controllers.ReservationList(bookingService, logg))
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Post("/", controllers.InvoiceCreate(invoiceService, logg))
				r.Get("/", controllers.InvoiceList(invoiceService, logg))
				r.Get("/{invoiceId}", controllers.InvoiceGet(invoiceService, logg))
				r.Get("/{invoiceId}/ledger", controllers.InvoiceLedger(invoiceService, ledgerService, logg))
			})
		})
	})

	return r
}
