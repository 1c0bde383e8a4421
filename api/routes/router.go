package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khullasher1256-hash/Evercart/api/controllers"
	"github.com/khullasher1256-hash/Evercart/api/middleware"
	"github.com/khullasher1256-hash/Evercart/internal/auth"
	"github.com/khullasher1256-hash/Evercart/internal/cart"
	"github.com/khullasher1256-hash/Evercart/internal/catalog"
	checkoutsvc "github.com/khullasher1256-hash/Evercart/internal/checkout"
	"github.com/khullasher1256-hash/Evercart/internal/orders"
	"github.com/khullasher1256-hash/Evercart/internal/users"
	"github.com/khullasher1256-hash/Evercart/pkg/auth/session"
	"github.com/khullasher1256-hash/Evercart/pkg/config"
	"github.com/khullasher1256-hash/Evercart/pkg/db"
	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/logger"
	"github.com/khullasher1256-hash/Evercart/pkg/metrics"
	"github.com/khullasher1256-hash/Evercart/pkg/redis"

	"github.com/google/uuid"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type accountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Deps collects everything the router mounts. Keeping it in one struct makes
// the wiring in cmd/api readable and the router testable with stubs.
type Deps struct {
	Cfg         *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       redis.Pinger
	Sessions    sessionManager
	HTTPMetrics *metrics.HTTPMetrics

	Accounts accountFinder

	AuthService          auth.Service
	RegisterService      auth.RegisterService
	AdminRegisterService auth.AdminRegisterService
	CatalogService       catalog.Service
	CartService          cart.Service
	CheckoutService      checkoutsvc.Service
	OrdersService        orders.Service
	UsersService         users.Service

	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		// The bootstrap key inside the service is the only gate here; the
		// first admin cannot pass the admin middleware yet.
		r.Post("/admin/register", controllers.AuthAdminRegister(deps.AdminRegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.CatalogService, logg))
		r.Get("/categories", controllers.ListCategories(deps.CatalogService, logg))
		r.Get("/brands", controllers.ListBrands(deps.CatalogService, logg))
		r.Get("/{productID}", controllers.GetProduct(deps.CatalogService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartService, logg))
			r.Post("/add", controllers.CartAddItem(deps.CartService, logg))
			r.Post("/update", controllers.CartUpdateItem(deps.CartService, logg))
			r.Post("/remove", controllers.CartRemoveItem(deps.CartService, logg))
			r.Post("/clear", controllers.CartClear(deps.CartService, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(deps.CheckoutService, logg))
			r.Get("/", controllers.ListMyOrders(deps.OrdersService, logg))
			r.Get("/{orderID}", controllers.GetMyOrder(deps.OrdersService, logg))
		})

		r.Route("/api/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(deps.Accounts, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(deps.CatalogService, logg))
				r.Patch("/{productID}", controllers.AdminUpdateProduct(deps.CatalogService, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.CatalogService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.OrdersService, logg))
				r.Put("/{orderID}", controllers.AdminUpdateOrderStatus(deps.OrdersService, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminListUsers(deps.UsersService, logg))
				r.Put("/{userID}/role", controllers.AdminUpdateUserRole(deps.UsersService, logg))
				r.Delete("/{userID}", controllers.AdminDeleteUser(deps.UsersService, logg))
			})
		})
	})

	return r
}
