package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carehub-project/carectl/internal/api"
)

// TokenExpiry reads the exp claim out of the access token without verifying
// the signature. The token is opaque proof for the backend; the client only
// peeks at expiry to decide whether a refresh is worth attempting.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// RefreshIfNeeded swaps the access token for a fresh one when it expires
// within leeway. Tokens without a readable expiry are left alone. The user
// and refresh token entries are not touched.
func (s *Store) RefreshIfNeeded(ctx context.Context, client *api.Client, leeway time.Duration) error {
	expiry, ok := s.TokenExpiry()
	if !ok || time.Until(expiry) > leeway {
		return nil
	}

	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()
	if refreshToken == "" {
		return nil
	}

	token, err := client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.user == nil {
		// Session was invalidated while the refresh was in flight
		s.mu.Unlock()
		return nil
	}
	serialized, err := userJSON(s.user)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := save(s.path, credentials{
		Token:        token,
		RefreshToken: s.refreshToken,
		User:         serialized,
	}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.accessToken = token
	s.mu.Unlock()
	s.notify()
	return nil
}
