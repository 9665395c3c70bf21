package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authsvc "github.com/museshop/backend/internal/auth"
	"github.com/museshop/backend/internal/cart"
	"github.com/museshop/backend/internal/payments"
	"github.com/museshop/backend/internal/products"
	"github.com/museshop/backend/internal/reports"
	pkgauth "github.com/museshop/backend/pkg/auth"
	"github.com/museshop/backend/pkg/auth/session"
	"github.com/museshop/backend/pkg/config"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	"github.com/museshop/backend/pkg/logger"
	"github.com/museshop/backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.TokenPair, error) {
	return &authsvc.TokenPair{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubProductService struct {
	products []models.Product
}

func (s stubProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s stubProductService) ListFavorites(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s stubProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, nil
}

func (s stubProductService) GetByName(ctx context.Context, name string) (*models.Product, error) {
	panic("unimplemented")
}

func (s stubProductService) SetFavorite(ctx context.Context, id int64, favorite bool) (*models.Product, error) {
	panic("unimplemented")
}

func (s stubProductService) Create(ctx context.Context, input products.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: 1, Name: input.Name, Price: input.Price, Stock: input.Stock}, nil
}

func (s stubProductService) Update(ctx context.Context, id int64, input products.UpdateProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (s stubProductService) Delete(ctx context.Context, id int64) error {
	return nil
}

func (s stubProductService) SeedIfEmpty(ctx context.Context) (int, error) {
	return 0, nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) GetForUser(ctx context.Context, userID, paymentID string) (*models.Payment, error) {
	return &models.Payment{PaymentID: paymentID, UserID: userID}, nil
}

func (stubPaymentsService) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	return &models.Payment{PaymentID: paymentID}, nil
}

func (stubPaymentsService) HistoryForUser(ctx context.Context, userID string, params pagination.Params) (*payments.ListResult, error) {
	return &payments.ListResult{}, nil
}

func (stubPaymentsService) HistoryAll(ctx context.Context, params pagination.Params) (*payments.ListResult, error) {
	return &payments.ListResult{}, nil
}

func (stubPaymentsService) ConfirmCash(ctx context.Context, paymentID string) (*models.Payment, error) {
	return &models.Payment{PaymentID: paymentID, Status: enums.PaymentStatusCompleted}, nil
}

type stubReportsService struct{}

func (stubReportsService) SalesReport(ctx context.Context, filters reports.Filters) (*reports.SalesReport, error) {
	return &reports.SalesReport{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	catalog := []models.Product{
		{ID: 1, Name: "Fender", Price: decimal.RequireFromString("779.00"), Stock: 10},
	}
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Redis:    stubPinger{},
		Sessions: stubSessionChecker{},
		Auth:     stubAuthService{},
		Products: stubProductService{products: catalog},
		Carts:    cart.NewManager(),
		Payments: stubPaymentsService{},
		Reports:  stubReportsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for product list got %d", resp.Code)
	}
}

func TestStaffGroupRequiresStaffRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/v1/staff/reports/sales", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodGet, "/api/v1/staff/reports/sales", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d", resp.Code)
	}
}

func TestCartFlowThroughRouter(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.UserRoleCustomer)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":2}`))
	add.Header.Set("Authorization", "Bearer "+token)
	add.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 adding item got %d: %s", resp.Code, resp.Body.String())
	}

	fetch := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	fetch.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, fetch)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching cart got %d", resp.Code)
	}

	var body struct {
		Data cart.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode cart snapshot: %v", err)
	}
	if len(body.Data.Lines) != 1 || body.Data.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected snapshot %+v", body.Data)
	}
}

func TestAuthRegisterRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}
