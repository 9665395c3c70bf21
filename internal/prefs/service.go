package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const loginEmailPreference = "login_email"

// Service stores small per-user preferences, like the remembered
// login email shown on the sign-in screen.
type Service interface {
	SaveLoginEmail(ctx context.Context, userID uuid.UUID, email string) error
	LoginEmail(ctx context.Context, userID uuid.UUID) (string, error)
	ClearLoginEmail(ctx context.Context, userID uuid.UUID) error
}

type prefStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	PreferenceKey(userID, name string) string
}

type service struct {
	store prefStore
}

// NewService constructs a preference service backed by the provided store.
func NewService(store prefStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("preference store is required")
	}
	return &service{store: store}, nil
}

func (s *service) SaveLoginEmail(ctx context.Context, userID uuid.UUID, email string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	key := s.store.PreferenceKey(userID.String(), loginEmailPreference)
	if err := s.store.Set(ctx, key, normalized, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save login email")
	}
	return nil
}

// LoginEmail returns the remembered email, or "" when none is saved.
func (s *service) LoginEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	key := s.store.PreferenceKey(userID.String(), loginEmailPreference)
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load login email")
	}
	return value, nil
}

func (s *service) ClearLoginEmail(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	key := s.store.PreferenceKey(userID.String(), loginEmailPreference)
	if err := s.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear login email")
	}
	return nil
}
