package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/citylink/citylink-api/internal/core/domain"
)

const (
	sessionPrefix = "session:"
	themePrefix   = "theme:"

	// defaultTheme is returned when an account has never saved a preference.
	defaultTheme = "light"
)

// SessionStore keeps the currently logged-in account and the per-account theme
// preference in Redis. Sessions carry a TTL matching the auth token; theme
// preferences never expire.
type SessionStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewSessionStore(client *redis.Client, sessionTTL time.Duration) *SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &SessionStore{client: client, sessionTTL: sessionTTL}
}

// SaveSession serializes the account under session:<id>.
func (s *SessionStore) SaveSession(ctx context.Context, account *domain.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+account.ID, data, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession restores the cached account. A missing or expired key is
// reported as domain.ErrAccountNotFound so callers fall back to the directory.
func (s *SessionStore) LoadSession(ctx context.Context, accountID string) (*domain.Account, error) {
	data, err := s.client.Get(ctx, sessionPrefix+accountID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var account domain.Account
	if err := json.Unmarshal([]byte(data), &account); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &account, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, sessionPrefix+accountID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SaveTheme stores the "dark"/"light" preference under theme:<id>.
func (s *SessionStore) SaveTheme(ctx context.Context, accountID, theme string) error {
	if err := s.client.Set(ctx, themePrefix+accountID, theme, 0).Err(); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// LoadTheme returns the saved preference, defaulting to "light".
func (s *SessionStore) LoadTheme(ctx context.Context, accountID string) (string, error) {
	theme, err := s.client.Get(ctx, themePrefix+accountID).Result()
	if errors.Is(err, redis.Nil) {
		return defaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	return theme, nil
}
