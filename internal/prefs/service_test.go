package prefs

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeStore) PreferenceKey(userID, name string) string {
	return strings.Join([]string{"ms", "prefs", userID, name}, ":")
}

func TestSaveAndLoadLoginEmail(t *testing.T) {
	store := newFakeStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	if err := svc.SaveLoginEmail(context.Background(), userID, "  Player@Example.COM "); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.LoginEmail(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "player@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}

func TestLoginEmailMissingIsEmpty(t *testing.T) {
	svc, err := NewService(newFakeStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.LoginEmail(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty email, got %q", got)
	}
}

func TestClearLoginEmail(t *testing.T) {
	store := newFakeStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	if err := svc.SaveLoginEmail(context.Background(), userID, "player@example.com"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.ClearLoginEmail(context.Background(), userID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected store to be empty, got %d entries", len(store.values))
	}
}

func TestPreferenceValidation(t *testing.T) {
	svc, err := NewService(newFakeStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.SaveLoginEmail(context.Background(), uuid.Nil, "player@example.com"); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil user, got %v", err)
	}
	if err := svc.SaveLoginEmail(context.Background(), uuid.New(), "   "); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank email, got %v", err)
	}
	if _, err := svc.LoginEmail(context.Background(), uuid.Nil); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil user, got %v", err)
	}
}
