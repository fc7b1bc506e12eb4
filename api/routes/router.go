package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andradelabs/motopecas-backend/api/controllers"
	"github.com/andradelabs/motopecas-backend/api/middleware"
	"github.com/andradelabs/motopecas-backend/internal/cart"
	"github.com/andradelabs/motopecas-backend/internal/catalog"
	checkoutsvc "github.com/andradelabs/motopecas-backend/internal/checkout"
	"github.com/andradelabs/motopecas-backend/internal/orders"
	"github.com/andradelabs/motopecas-backend/internal/products"
	"github.com/andradelabs/motopecas-backend/internal/shipping"
	"github.com/andradelabs/motopecas-backend/internal/support"
	"github.com/andradelabs/motopecas-backend/internal/testimonials"
	"github.com/andradelabs/motopecas-backend/pkg/config"
	"github.com/andradelabs/motopecas-backend/pkg/db"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
	"github.com/andradelabs/motopecas-backend/pkg/metrics"
	"github.com/andradelabs/motopecas-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface: public catalog reads, the
// session-scoped storefront operations, and the token-guarded admin area.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	cartService cart.Service,
	shippingResolver *shipping.Resolver,
	checkoutService checkoutsvc.Service,
	productService products.Service,
	catalogService catalog.Service,
	ordersService orders.Service,
	testimonialService testimonials.Service,
	supportService support.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	quotePolicy := middleware.NewRateLimitPolicy("shipping_quote", cfg.Shipping.QuoteRateWindow, cfg.Shipping.QuoteRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{slug}", controllers.GetProduct(productService, logg))
		})
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/models", controllers.ListModels(catalogService, logg))
		r.Get("/models/{modelID}/products", controllers.ListProductsForModel(productService, logg))
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", controllers.ListTestimonials(testimonialService, logg))
			r.Post("/", controllers.SubmitTestimonial(testimonialService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartService, logg))
				r.Post("/items", controllers.AddCartItem(cartService, logg))
				r.Patch("/items/{itemID}", controllers.UpdateCartItem(cartService, logg))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(cartService, logg))
				r.Delete("/", controllers.ClearCart(cartService, logg))
				r.Post("/coupon", controllers.ApplyCoupon(cartService, logg))
				r.With(middleware.RateLimit(quotePolicy, redisClient, logg)).
					Post("/shipping", controllers.QuoteShipping(cartService, shippingResolver, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/preview", controllers.PreviewCheckout(checkoutService, logg))
				r.Post("/", controllers.SubmitCheckout(checkoutService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListMyOrders(ordersService, logg))
				r.Get("/{orderID}", controllers.GetMyOrder(ordersService, logg))
			})

			r.Route("/support/tickets", func(r chi.Router) {
				r.Post("/", controllers.OpenTicket(supportService, logg))
				r.Get("/", controllers.ListMyTickets(supportService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminOnly(cfg.Admin, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(productService, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(productService, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(productService, logg))
			r.Put("/{productID}/stock", controllers.AdminSetStock(productService, logg))
		})
		r.Post("/categories", controllers.AdminCreateCategory(catalogService, logg))
		r.Post("/models", controllers.AdminCreateModel(catalogService, logg))
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(ordersService, logg))
			r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
		})
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", controllers.AdminListTestimonials(testimonialService, logg))
			r.Post("/{testimonialID}/approve", controllers.AdminApproveTestimonial(testimonialService, logg))
			r.Delete("/{testimonialID}", controllers.AdminDeleteTestimonial(testimonialService, logg))
		})
		r.Route("/support/tickets", func(r chi.Router) {
			r.Get("/", controllers.AdminListTickets(supportService, logg))
			r.Patch("/{ticketID}", controllers.AdminTriageTicket(supportService, logg))
		})
	})

	return r
}
