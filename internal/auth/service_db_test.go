package auth

import (
	"context"
	"testing"

	"github.com/museshop/backend/internal/users"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  display_name TEXT,
  role TEXT NOT NULL DEFAULT 'customer',
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	require.NoError(t, conn.Exec("DELETE FROM users").Error)
	return conn
}

func TestRegisterDuplicateEmailConflictsOnRealRepo(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(setupUsersTestDB(t)),
		SessionManager: newFakeSessions(),
		JWTConfig:      testJWTConfig,
		PasswordConfig: testPasswordConfig,
	})
	require.NoError(t, err)

	req := RegisterRequest{Email: "dup@example.com", Password: "correct-horse"}
	_, err = svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}
