package auth

import (
	"context"
	"strings"
	"testing"

	pkgauth "github.com/museshop/backend/pkg/auth"
	"github.com/museshop/backend/pkg/auth/session"
	"github.com/museshop/backend/pkg/config"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "museshop-test",
	ExpirationMinutes: 15,
}

// Small parameters keep hashing fast in tests.
var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	clone := *user
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

type fakeSessions struct {
	tokens map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]string)}
}

func (f *fakeSessions) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.tokens[accessID] = token
	return token, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.tokens, oldAccessID)
	newID := session.NewAccessID()
	token := "refresh-" + newID
	f.tokens[newID] = token
	return newID, token, nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	delete(f.tokens, accessID)
	return nil
}

func newAuthService(t *testing.T) (Service, *fakeUserRepo, *fakeSessions) {
	t.Helper()
	repo := newFakeUserRepo()
	sessions := newFakeSessions()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
		PasswordConfig: testPasswordConfig,
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc, repo, sessions
}

func TestRegisterCreatesCustomerAndIssuesTokens(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "  New@Example.COM ",
		Password:    "correct-horse",
		DisplayName: " Nia ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, ok := repo.byEmail["new@example.com"]
	if !ok {
		t.Fatal("expected normalized email key")
	}
	if stored.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", stored.Role)
	}
	if stored.DisplayName != "Nia" {
		t.Fatalf("expected trimmed display name, got %q", stored.DisplayName)
	}
	if strings.Contains(stored.PasswordHash, "correct-horse") {
		t.Fatal("password stored in plain text")
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != stored.ID || claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newAuthService(t)

	req := RegisterRequest{Email: "dup@example.com", Password: "correct-horse"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "player@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Player@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.Email != "player@example.com" {
		t.Fatalf("unexpected user %q", resp.User.Email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "player@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{name: "wrong password", req: LoginRequest{Email: "player@example.com", Password: "wrong"}},
		{name: "unknown user", req: LoginRequest{Email: "ghost@example.com", Password: "correct-horse"}},
		{name: "empty password", req: LoginRequest{Email: "player@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), invalidCredentialsMessage) {
				t.Fatalf("error leaks detail: %v", err)
			}
		})
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "player@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == resp.AccessToken || pair.RefreshToken == resp.RefreshToken {
		t.Fatal("expected fresh token pair")
	}

	// Old refresh token cannot be replayed.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", err)
	}

	if len(sessions.tokens) != 1 {
		t.Fatalf("expected exactly one live session, got %d", len(sessions.tokens))
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "player@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.tokens) != 0 {
		t.Fatalf("expected sessions to be revoked, got %d", len(sessions.tokens))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "missing email", req: RegisterRequest{Password: "correct-horse"}},
		{name: "short password", req: RegisterRequest{Email: "u@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
