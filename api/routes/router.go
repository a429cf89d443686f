package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relooped/reloop-backend/api/controllers"
	"github.com/relooped/reloop-backend/api/middleware"
	authsvc "github.com/relooped/reloop-backend/internal/auth"
	cartsvc "github.com/relooped/reloop-backend/internal/cart"
	catalogsvc "github.com/relooped/reloop-backend/internal/catalog"
	ordersvc "github.com/relooped/reloop-backend/internal/orders"
	productsvc "github.com/relooped/reloop-backend/internal/products"
	usersvc "github.com/relooped/reloop-backend/internal/users"
	"github.com/relooped/reloop-backend/pkg/config"
	"github.com/relooped/reloop-backend/pkg/logger"
	"github.com/relooped/reloop-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService authsvc.Service,
	catalogService catalogsvc.Service,
	productService productsvc.Service,
	cartService cartsvc.Service,
	ordersService ordersvc.Service,
	usersService usersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(authService, logg))
			r.Post("/login", controllers.AuthLogin(authService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/me", controllers.AuthMe(authService, logg))
				r.Put("/profile", controllers.AuthUpdateProfile(authService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(catalogService, logg))
				r.Post("/", controllers.ProductCreate(productService, catalogService, logg))
				r.Get("/my-listings", controllers.MyListings(catalogService, logg))
				r.Get("/popular-tags", controllers.PopularTags(catalogService, logg))
				r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(productService, catalogService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/", controllers.CartAdd(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Delete("/{productId}", controllers.CartRemove(cartService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/checkout", controllers.Checkout(ordersService, logg))
				r.Get("/my-purchases", controllers.OrdersList(ordersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			})

			r.Route("/sellers/{sellerId}", func(r chi.Router) {
				r.Get("/", controllers.SellerProfile(usersService, logg))
				r.Get("/listings", controllers.SellerListings(catalogService, logg))
				r.Post("/ratings", controllers.SellerRate(usersService, logg))
			})
		})
	})

	return r
}
