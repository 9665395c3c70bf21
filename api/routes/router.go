package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/museshop/backend/api/controllers"
	"github.com/museshop/backend/api/middleware"
	authsvc "github.com/museshop/backend/internal/auth"
	"github.com/museshop/backend/internal/cart"
	checkoutsvc "github.com/museshop/backend/internal/checkout"
	"github.com/museshop/backend/internal/payments"
	"github.com/museshop/backend/internal/prefs"
	"github.com/museshop/backend/internal/products"
	"github.com/museshop/backend/internal/reports"
	"github.com/museshop/backend/pkg/auth/session"
	"github.com/museshop/backend/pkg/config"
	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/enums"
	"github.com/museshop/backend/pkg/logger"
	"github.com/museshop/backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
	Auth     authsvc.Service
	Prefs    prefs.Service
	Products products.Service
	Carts    *cart.Manager
	Checkout checkoutsvc.Service
	Payments payments.Service
	Reports  reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/me/preferences", func(r chi.Router) {
			r.Get("/login-email", controllers.PrefsLoginEmail(deps.Prefs, logg))
			r.Put("/login-email", controllers.PrefsSaveLoginEmail(deps.Prefs, logg))
			r.Delete("/login-email", controllers.PrefsClearLoginEmail(deps.Prefs, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Products, logg))
			r.Put("/{productId}/favorite", controllers.ProductSetFavorite(deps.Products, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Products, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, deps.Carts, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderHistory(deps.Payments, logg))
			r.Get("/{paymentId}", controllers.OrderDetail(deps.Payments, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleStaff), logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.StaffCreateProduct(deps.Products, logg))
				r.Patch("/{productId}", controllers.StaffUpdateProduct(deps.Products, logg))
				r.Delete("/{productId}", controllers.StaffDeleteProduct(deps.Products, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.StaffOrderList(deps.Payments, logg))
				r.Get("/{paymentId}", controllers.StaffOrderDetail(deps.Payments, logg))
				r.Post("/{paymentId}/confirm-cash", controllers.StaffConfirmCash(deps.Payments, logg))
			})

			r.Get("/reports/sales", controllers.StaffSalesReport(deps.Reports, logg))
		})
	})

	return r
}
