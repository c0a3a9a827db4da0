package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Session keys.
const (
	sessionTokenKey   = "session:token"
	sessionProfileKey = "session:profile"
)

// Profile is the logged-in user as written by the external login flow.
type Profile struct {
	ID     int64  `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
}

// Session holds the bearer token and user profile. It is written once at
// login and read everywhere; a 401 response clears it.
type Session struct {
	store Store
}

// NewSession creates a session view over the given store.
func NewSession(s Store) *Session {
	return &Session{store: s}
}

// SetToken stores the bearer token.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, Key(sessionTokenKey), token)
}

// Token returns the current bearer token, or "" when no session exists.
func (s *Session) Token(ctx context.Context) string {
	token, err := s.store.Get(ctx, Key(sessionTokenKey))
	if err != nil {
		return ""
	}
	return token
}

// SetProfile stores the logged-in user profile.
func (s *Session) SetProfile(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.store.Set(ctx, Key(sessionProfileKey), string(data))
}

// Profile returns the stored user profile, or ErrNotFound when no session
// exists.
func (s *Session) Profile(ctx context.Context) (Profile, error) {
	data, err := s.store.Get(ctx, Key(sessionProfileKey))
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// Active reports whether a token is present.
func (s *Session) Active(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Clear removes token and profile. Called when the API answers 401.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, Key(sessionTokenKey)); err != nil {
		return err
	}
	return s.store.Delete(ctx, Key(sessionProfileKey))
}
