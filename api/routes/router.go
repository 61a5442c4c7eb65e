package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solbazaar/solbazaar-backend/api/controllers"
	"github.com/solbazaar/solbazaar-backend/api/middleware"
	"github.com/solbazaar/solbazaar-backend/internal/analytics"
	authsvc "github.com/solbazaar/solbazaar-backend/internal/auth"
	"github.com/solbazaar/solbazaar-backend/internal/catalog"
	"github.com/solbazaar/solbazaar-backend/internal/consultations"
	"github.com/solbazaar/solbazaar-backend/internal/escalations"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/internal/installations"
	"github.com/solbazaar/solbazaar-backend/internal/orders"
	"github.com/solbazaar/solbazaar-backend/internal/pricing"
	"github.com/solbazaar/solbazaar-backend/internal/solutions"
	"github.com/solbazaar/solbazaar-backend/internal/support"
	"github.com/solbazaar/solbazaar-backend/internal/surveys"
	"github.com/solbazaar/solbazaar-backend/internal/warehouses"
	"github.com/solbazaar/solbazaar-backend/pkg/config"
	"github.com/solbazaar/solbazaar-backend/pkg/db"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth          authsvc.Service
	Identity      identity.Service
	Catalog       catalog.Service
	Pricing       pricing.Service
	Orders        orders.Service
	Warehouses    warehouses.Service
	Solutions     solutions.Service
	Surveys       surveys.Service
	Installations installations.Service
	Escalations   escalations.Service
	Consultations consultations.Service
	Analytics     analytics.Service
	Support       support.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		if redisClient != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		} else {
			r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		}
	})

	r.Route("/api/public/v1", func(r chi.Router) {
		r.Get("/products", controllers.PublicProductList(svcs.Catalog, logg))
		r.Get("/products/{productId}", controllers.PublicProductDetail(svcs.Catalog, logg))
		r.Get("/solutions", controllers.PublicSolutionList(svcs.Solutions, logg))
		r.Get("/solutions/{solutionId}", controllers.PublicSolutionDetail(svcs.Solutions, logg))
		r.Post("/quote", controllers.PublicPriceQuote(svcs.Pricing, logg))
	})

	r.Route("/api/v1/user", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleUser.String(), logg))

		r.Get("/profile", controllers.UserProfile(svcs.Identity, logg))
		r.Put("/profile", controllers.UserProfileUpdate(svcs.Identity, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.UserPlaceOrder(svcs.Orders, logg))
			r.Get("/", controllers.UserOrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.UserOrderDetail(svcs.Orders, logg))
		})

		r.Get("/installations", controllers.UserInstallationList(svcs.Installations, logg))

		r.Route("/escalations", func(r chi.Router) {
			r.Post("/", controllers.UserEscalationFile(svcs.Escalations, logg))
			r.Get("/", controllers.UserEscalationList(svcs.Escalations, logg))
			r.Post("/{escalationId}/concerns", controllers.UserEscalationConcern(svcs.Escalations, logg))
		})

		r.Route("/consultations", func(r chi.Router) {
			r.Post("/", controllers.UserConsultationAsk(svcs.Consultations, logg))
			r.Get("/", controllers.UserConsultationList(svcs.Consultations, logg))
		})

		r.Post("/support/chat", controllers.SupportChat(svcs.Support, logg))
	})

	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleSeller.String(), logg))

		r.Get("/profile", controllers.SellerProfile(svcs.Identity, logg))
		r.Put("/profile", controllers.SellerProfileUpdate(svcs.Identity, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.SellerProductCreate(svcs.Catalog, logg))
			r.Get("/", controllers.SellerProductList(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.SellerProductUpdate(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.SellerProductDelete(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.SellerOrderList(svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.SellerOrderStatus(svcs.Orders, logg))
			r.Delete("/{orderId}", controllers.SellerOrderDelete(svcs.Orders, logg))
			r.Post("/{orderId}/invoice", controllers.SellerOrderInvoice(svcs.Orders, logg))
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Post("/", controllers.SellerWarehouseCreate(svcs.Warehouses, logg))
			r.Get("/", controllers.SellerWarehouseList(svcs.Warehouses, logg))
			r.Get("/{warehouseId}", controllers.SellerWarehouseDetail(svcs.Warehouses, logg))
			r.Put("/{warehouseId}", controllers.SellerWarehouseUpdate(svcs.Warehouses, logg))
			r.Delete("/{warehouseId}", controllers.SellerWarehouseDelete(svcs.Warehouses, logg))
			r.Put("/{warehouseId}/stock", controllers.SellerWarehouseStock(svcs.Warehouses, logg))
		})

		r.Post("/escalations/{escalationId}/concerns", controllers.SellerEscalationConcern(svcs.Escalations, logg))

		r.Post("/survey-request", controllers.SellerSurveyRequest(svcs.Surveys, logg))

		r.Post("/support/chat", controllers.SupportChat(svcs.Support, logg))

		r.Get("/dashboard", controllers.SellerDashboard(svcs.Analytics, logg))
		r.Get("/analytics", controllers.SellerAnalytics(svcs.Analytics, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/", controllers.AdminDiscountConfig(svcs.Pricing, logg))
			r.Put("/", controllers.AdminReplaceDiscountConfig(svcs.Pricing, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(svcs.Identity, logg))
			r.Get("/{userId}", controllers.AdminUserDetail(svcs.Identity, logg))
			r.Put("/{userId}/verification", controllers.AdminUserVerify(svcs.Identity, logg))
			r.Post("/{userId}/schedule-survey", controllers.AdminUserScheduleSurvey(svcs.Surveys, logg))
		})

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/", controllers.AdminSellerList(svcs.Identity, logg))
			r.Get("/{sellerId}", controllers.AdminSellerDetail(svcs.Identity, logg))
			r.Put("/{sellerId}/verification", controllers.AdminSellerVerify(svcs.Identity, logg))
			r.Post("/{sellerId}/schedule-survey", controllers.AdminSellerScheduleSurvey(svcs.Surveys, logg))
		})

		r.Get("/products", controllers.AdminProductList(svcs.Catalog, logg))
		r.Put("/products/{productId}/verification", controllers.AdminProductVerify(svcs.Catalog, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderStatus(svcs.Orders, logg))
		})

		r.Route("/surveys", func(r chi.Router) {
			r.Post("/", controllers.AdminSurveySchedule(svcs.Surveys, logg))
			r.Get("/", controllers.AdminSurveyList(svcs.Surveys, logg))
			r.Get("/{surveyId}", controllers.AdminSurveyDetail(svcs.Surveys, logg))
			r.Put("/{surveyId}/complete", controllers.AdminSurveyComplete(svcs.Surveys, logg))
		})

		r.Route("/consultations", func(r chi.Router) {
			r.Get("/", controllers.AdminConsultationList(svcs.Consultations, logg))
			r.Get("/{consultationId}", controllers.AdminConsultationDetail(svcs.Consultations, logg))
			r.Post("/{consultationId}/replies", controllers.AdminConsultationReply(svcs.Consultations, logg))
			r.Delete("/{consultationId}", controllers.AdminConsultationDelete(svcs.Consultations, logg))
		})

		r.Route("/installations", func(r chi.Router) {
			r.Post("/", controllers.AdminInstallationSchedule(svcs.Installations, logg))
			r.Get("/", controllers.AdminInstallationList(svcs.Installations, logg))
			r.Get("/{installationId}", controllers.AdminInstallationDetail(svcs.Installations, logg))
			r.Put("/{installationId}", controllers.AdminInstallationUpdate(svcs.Installations, logg))
			r.Put("/{installationId}/status", controllers.AdminInstallationStatus(svcs.Installations, logg))
			r.Delete("/{installationId}", controllers.AdminInstallationDelete(svcs.Installations, logg))
		})

		r.Route("/solutions", func(r chi.Router) {
			r.Post("/", controllers.AdminSolutionCreate(svcs.Solutions, logg))
			r.Put("/{solutionId}", controllers.AdminSolutionUpdate(svcs.Solutions, logg))
			r.Delete("/{solutionId}", controllers.AdminSolutionDelete(svcs.Solutions, logg))
		})

		r.Route("/escalations", func(r chi.Router) {
			r.Get("/", controllers.AdminEscalationList(svcs.Escalations, logg))
			r.Get("/{escalationId}", controllers.AdminEscalationDetail(svcs.Escalations, logg))
			r.Put("/{escalationId}", controllers.AdminEscalationResolve(svcs.Escalations, logg))
		})

		r.Get("/dashboard", controllers.AdminDashboard(svcs.Analytics, logg))
		r.Get("/analytics", controllers.AdminAnalytics(svcs.Analytics, logg))
	})

	return r
}
