// Package session holds the authenticated session: the durable access token,
// the derived current-user record, and the role guard built on both.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"smartpath/internal/api"
	"smartpath/internal/cache"
	"smartpath/internal/models"
)

// AuthService is the slice of the auth client the session store needs
type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Profile(ctx context.Context) (*models.User, error)
}

// Store tracks the credential and the current user derived from it.
// Invariant: no token means no current user.
type Store struct {
	mu     sync.RWMutex
	token  string
	tokens *TokenStore
	auth   AuthService
	cache  *cache.Store
	logger *zap.Logger
}

// NewStore creates a session store, restoring any persisted token.
// tokens may be nil, in which case the credential lives in memory only.
func NewStore(tokens *TokenStore, auth AuthService, queries *cache.Store, logger *zap.Logger) (*Store, error) {
	store := &Store{
		tokens: tokens,
		auth:   auth,
		cache:  queries,
		logger: logger,
	}

	if tokens != nil {
		token, err := tokens.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to restore session: %w", err)
		}
		store.token = token
		if token != "" {
			logger.Debug("restored persisted session token")
		}
	}

	return store, nil
}

// Token returns the current access token, empty when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores the credential and persists it. A token change is an
// identity change, so every session-scoped cache entry is dropped: nothing
// fetched under the previous credential may be served to the new one.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.cache.Clear()

	if s.tokens != nil {
		if err := s.tokens.Save(token); err != nil {
			return err
		}
	}
	return nil
}

// ClearToken drops the credential. The cached current user and every other
// session-scoped query are dropped with it.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.cache.Clear()

	if s.tokens != nil {
		if err := s.tokens.Delete(); err != nil {
			return err
		}
	}
	return nil
}

// Login authenticates and establishes the session
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.SetToken(result.AccessToken); err != nil {
		return nil, err
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("logged in", zap.Int64("userID", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Logout ends the session
func (s *Store) Logout() error {
	s.logger.Info("logged out")
	return s.ClearToken()
}

// CurrentUser resolves the profile for the stored token, through the cached
// query layer. An expired token fails locally without a network round-trip.
// Any authentication failure ends the session.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	token := s.Token()
	if token == "" {
		return nil, api.ErrUnauthenticated
	}
	if tokenExpired(token) {
		s.logger.Debug("stored token expired")
		if err := s.ClearToken(); err != nil {
			s.logger.Warn("failed to clear expired token", zap.Error(err))
		}
		return nil, api.ErrUnauthenticated
	}

	user, err := cache.Lookup(ctx, s.cache, cache.CurrentUser(), func(ctx context.Context) (*models.User, error) {
		return s.auth.Profile(ctx)
	})
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			if clearErr := s.ClearToken(); clearErr != nil {
				s.logger.Warn("failed to clear rejected token", zap.Error(clearErr))
			}
			return nil, api.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// tokenExpired reports whether the token is a JWT whose expiry has passed.
// Claims are read without signature verification; the backend remains the
// authority, this only saves a request that is guaranteed to fail.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		// Opaque token, let the backend decide
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
