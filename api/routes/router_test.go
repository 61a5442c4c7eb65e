package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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
	pkgauth "github.com/solbazaar/solbazaar-backend/pkg/auth"
	"github.com/solbazaar/solbazaar-backend/pkg/config"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, authsvc.RegisterInput) (*authsvc.Session, error) {
	panic("unimplemented")
}

func (stubAuthService) Login(context.Context, authsvc.LoginInput) (*authsvc.Session, error) {
	panic("unimplemented")
}

type stubIdentityService struct{}

func (stubIdentityService) GetPrincipal(context.Context, uuid.UUID, enums.Role) (*identity.Principal, error) {
	panic("unimplemented")
}

func (stubIdentityService) GetUser(context.Context, uuid.UUID) (*identity.UserView, error) {
	return &identity.UserView{}, nil
}

func (stubIdentityService) UpdateUserProfile(context.Context, uuid.UUID, identity.UpdateUserInput) (*identity.UserView, error) {
	panic("unimplemented")
}

func (stubIdentityService) ListUsers(context.Context, pagination.Params, identity.ListFilters) (*identity.UserList, error) {
	return &identity.UserList{}, nil
}

func (stubIdentityService) SetUserVerified(context.Context, uuid.UUID, bool) (*identity.UserView, error) {
	panic("unimplemented")
}

func (stubIdentityService) DeleteUser(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubIdentityService) GetSeller(context.Context, uuid.UUID) (*identity.SellerView, error) {
	return &identity.SellerView{}, nil
}

func (stubIdentityService) UpdateSellerProfile(context.Context, uuid.UUID, identity.UpdateSellerInput) (*identity.SellerView, error) {
	panic("unimplemented")
}

func (stubIdentityService) ListSellers(context.Context, pagination.Params, identity.ListFilters) (*identity.SellerList, error) {
	return &identity.SellerList{}, nil
}

func (stubIdentityService) SetSellerVerified(context.Context, uuid.UUID, bool) (*identity.SellerView, error) {
	panic("unimplemented")
}

func (stubIdentityService) DeleteSeller(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubIdentityService) GetAdmin(context.Context, uuid.UUID) (*identity.AdminView, error) {
	panic("unimplemented")
}

type stubCatalogService struct {
	listPublic func(ctx context.Context, params pagination.Params, search string) (*catalog.ProductList, error)
}

func (s stubCatalogService) CreateProduct(context.Context, uuid.UUID, catalog.CreateProductInput) (*catalog.ProductView, error) {
	panic("unimplemented")
}

func (s stubCatalogService) GetProduct(context.Context, uuid.UUID) (*catalog.ProductView, error) {
	panic("unimplemented")
}

func (s stubCatalogService) UpdateProduct(context.Context, uuid.UUID, uuid.UUID, catalog.UpdateProductInput) (*catalog.ProductView, error) {
	panic("unimplemented")
}

func (s stubCatalogService) DeleteProduct(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (s stubCatalogService) ListPublic(ctx context.Context, params pagination.Params, search string) (*catalog.ProductList, error) {
	if s.listPublic != nil {
		return s.listPublic(ctx, params, search)
	}
	return &catalog.ProductList{}, nil
}

func (s stubCatalogService) ListAll(context.Context, pagination.Params, string) (*catalog.ProductList, error) {
	return &catalog.ProductList{}, nil
}

func (s stubCatalogService) ListSellerProducts(context.Context, uuid.UUID, pagination.Params) (*catalog.ProductList, error) {
	return &catalog.ProductList{}, nil
}

func (s stubCatalogService) SetProductVerified(context.Context, uuid.UUID, bool) (*catalog.ProductView, error) {
	panic("unimplemented")
}

type stubPricingService struct{}

func (stubPricingService) GetConfig(context.Context) (*pricing.ConfigView, error) {
	return &pricing.ConfigView{}, nil
}

func (stubPricingService) ReplaceConfig(context.Context, pricing.ReplaceConfigInput) (*pricing.ConfigView, *pricing.RecomputeResult, error) {
	panic("unimplemented")
}

func (stubPricingService) Quote(context.Context, pricing.QuoteInput) (*pricing.QuoteView, error) {
	return &pricing.QuoteView{}, nil
}

func (stubPricingService) RecomputeAll(context.Context, string) (*pricing.RecomputeResult, error) {
	panic("unimplemented")
}

func (stubPricingService) PriceListing(context.Context, decimal.Decimal, bool) (decimal.Decimal, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) PlaceOrder(context.Context, uuid.UUID, orders.PlaceOrderInput) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) GetOrder(context.Context, uuid.UUID) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateStatus(context.Context, uuid.UUID, orders.UpdateStatusInput) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) DeleteOrder(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubOrdersService) Invoice(context.Context, uuid.UUID) (*orders.InvoiceView, error) {
	panic("unimplemented")
}

func (stubOrdersService) ListOrders(context.Context, pagination.Params, orders.ListFilters) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

type stubWarehousesService struct{}

func (stubWarehousesService) Create(context.Context, uuid.UUID, warehouses.CreateInput) (*warehouses.WarehouseView, error) {
	panic("unimplemented")
}

func (stubWarehousesService) Get(context.Context, uuid.UUID, uuid.UUID) (*warehouses.WarehouseView, error) {
	panic("unimplemented")
}

func (stubWarehousesService) Update(context.Context, uuid.UUID, uuid.UUID, warehouses.UpdateInput) (*warehouses.WarehouseView, error) {
	panic("unimplemented")
}

func (stubWarehousesService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubWarehousesService) List(context.Context, uuid.UUID, pagination.Params) (*warehouses.WarehouseList, error) {
	return &warehouses.WarehouseList{}, nil
}

func (stubWarehousesService) SetStock(context.Context, uuid.UUID, uuid.UUID, warehouses.StockInput) (*warehouses.WarehouseView, error) {
	panic("unimplemented")
}

type stubSolutionsService struct{}

func (stubSolutionsService) Create(context.Context, solutions.CreateInput) (*solutions.SolutionView, error) {
	panic("unimplemented")
}

func (stubSolutionsService) Get(context.Context, uuid.UUID) (*solutions.SolutionView, error) {
	panic("unimplemented")
}

func (stubSolutionsService) Update(context.Context, uuid.UUID, solutions.UpdateInput) (*solutions.SolutionView, error) {
	panic("unimplemented")
}

func (stubSolutionsService) Delete(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubSolutionsService) List(context.Context, pagination.Params, solutions.ListFilters) (*solutions.SolutionList, error) {
	return &solutions.SolutionList{}, nil
}

type stubSurveysService struct{}

func (stubSurveysService) Schedule(context.Context, surveys.ScheduleInput) (*surveys.SurveyView, error) {
	panic("unimplemented")
}

func (stubSurveysService) Request(context.Context, uuid.UUID, surveys.RequestInput) (*surveys.SurveyView, error) {
	panic("unimplemented")
}

func (stubSurveysService) Get(context.Context, uuid.UUID) (*surveys.SurveyView, error) {
	panic("unimplemented")
}

func (stubSurveysService) Complete(context.Context, uuid.UUID, surveys.CompleteInput) (*surveys.SurveyView, error) {
	panic("unimplemented")
}

func (stubSurveysService) List(context.Context, pagination.Params, surveys.ListFilters) (*surveys.SurveyList, error) {
	return &surveys.SurveyList{}, nil
}

type stubInstallationsService struct{}

func (stubInstallationsService) Schedule(context.Context, installations.ScheduleInput) (*installations.InstallationView, error) {
	panic("unimplemented")
}

func (stubInstallationsService) Get(context.Context, uuid.UUID) (*installations.InstallationView, error) {
	panic("unimplemented")
}

func (stubInstallationsService) Update(context.Context, uuid.UUID, installations.UpdateInput) (*installations.InstallationView, error) {
	panic("unimplemented")
}

func (stubInstallationsService) UpdateStatus(context.Context, uuid.UUID, installations.UpdateStatusInput) (*installations.InstallationView, error) {
	panic("unimplemented")
}

func (stubInstallationsService) Delete(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubInstallationsService) List(context.Context, pagination.Params, installations.ListFilters) (*installations.InstallationList, error) {
	return &installations.InstallationList{}, nil
}

type stubEscalationsService struct{}

func (stubEscalationsService) File(context.Context, escalations.FileInput) (*escalations.EscalationView, error) {
	panic("unimplemented")
}

func (stubEscalationsService) Get(context.Context, uuid.UUID) (*escalations.EscalationView, error) {
	panic("unimplemented")
}

func (stubEscalationsService) AddConcern(context.Context, uuid.UUID, escalations.ConcernInput) (*escalations.EscalationView, error) {
	panic("unimplemented")
}

func (stubEscalationsService) Resolve(context.Context, uuid.UUID, escalations.ResolveInput) (*escalations.EscalationView, error) {
	panic("unimplemented")
}

func (stubEscalationsService) List(context.Context, pagination.Params, escalations.ListFilters) (*escalations.EscalationList, error) {
	return &escalations.EscalationList{}, nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) AdminDashboard(context.Context) (*analytics.AdminDashboard, error) {
	return &analytics.AdminDashboard{}, nil
}

func (stubAnalyticsService) AdminAnalytics(context.Context) (*analytics.AdminAnalytics, error) {
	return &analytics.AdminAnalytics{}, nil
}

func (stubAnalyticsService) SellerDashboard(context.Context, uuid.UUID) (*analytics.SellerDashboard, error) {
	return &analytics.SellerDashboard{}, nil
}

func (stubAnalyticsService) SellerAnalytics(context.Context, uuid.UUID) (*analytics.SellerAnalytics, error) {
	return &analytics.SellerAnalytics{}, nil
}

type stubConsultationsService struct{}

func (stubConsultationsService) Ask(context.Context, uuid.UUID, consultations.AskInput) (*consultations.ConsultationView, error) {
	panic("unimplemented")
}

func (stubConsultationsService) Get(context.Context, uuid.UUID) (*consultations.ConsultationView, error) {
	panic("unimplemented")
}

func (stubConsultationsService) Reply(context.Context, uuid.UUID, consultations.ReplyInput) (*consultations.ConsultationView, error) {
	panic("unimplemented")
}

func (stubConsultationsService) Delete(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubConsultationsService) List(context.Context, pagination.Params, consultations.ListFilters) (*consultations.ConsultationList, error) {
	return &consultations.ConsultationList{}, nil
}

type stubSupportService struct{}

func (stubSupportService) Chat(context.Context, support.ChatInput) (*support.ChatReply, error) {
	return &support.ChatReply{Reply: "ok"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func stubServices() Services {
	return Services{
		Auth:          stubAuthService{},
		Identity:      stubIdentityService{},
		Catalog:       stubCatalogService{},
		Pricing:       stubPricingService{},
		Orders:        stubOrdersService{},
		Warehouses:    stubWarehousesService{},
		Solutions:     stubSolutionsService{},
		Surveys:       stubSurveysService{},
		Installations: stubInstallationsService{},
		Escalations:   stubEscalationsService{},
		Consultations: stubConsultationsService{},
		Analytics:     stubAnalyticsService{},
		Support:       stubSupportService{},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, nil, nil, stubServices())
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		PrincipalID: uuid.New(),
		Role:        role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestUserGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestUserGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for user profile got %d", resp.Code)
	}
}

func TestSellerGroupRequiresSellerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asUser := httptest.NewRequest(http.MethodGet, "/api/v1/seller/products", nil)
	asUser.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asUser)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user on seller route got %d", resp.Code)
	}

	asSeller := httptest.NewRequest(http.MethodGet, "/api/v1/seller/products", nil)
	asSeller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleSeller))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asSeller)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for seller got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asSeller := httptest.NewRequest(http.MethodGet, "/api/admin/v1/discounts", nil)
	asSeller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleSeller))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asSeller)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller on admin route got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/discounts", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
}

func TestPublicQuoteAcceptsBody(t *testing.T) {
	router := newTestRouter(testConfig())
	body := strings.NewReader(`{"price": "12000", "has_warranty": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/public/v1/quote", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for quote got %d", resp.Code)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live check got %d", resp.Code)
	}
	if resp.Header().Get("X-SolBazaar-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-SolBazaar-Env"))
	}
}

func TestUserConsultationListRouted(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/consultations", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for user consultations got %d", resp.Code)
	}
}

func TestAdminConsultationListRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/consultations", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user token got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/consultations", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin token got %d", resp.Code)
	}
}
