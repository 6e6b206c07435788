package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"StockProphet/internal/model"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// MockService accepts any non-empty credentials. Users are kept in a JSON
// file and sessions in an expiring in-memory cache.
type MockService struct {
	mu       sync.Mutex
	users    map[string]*model.User
	filePath string
	sessions *cache.Cache
	ttl      time.Duration
}

// NewMockService loads the user store from filePath. An empty filePath keeps
// users in memory only.
func NewMockService(filePath string, ttl time.Duration) (*MockService, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	users := map[string]*model.User{}
	if filePath != "" {
		loaded, err := LoadUsers(filePath)
		if err != nil {
			return nil, fmt.Errorf("load users: %w", err)
		}
		users = loaded
	}
	log.Info().Int("users", len(users)).Str("file", filePath).Msg("auth store loaded")
	return &MockService{
		users:    users,
		filePath: filePath,
		sessions: cache.New(ttl, 10*time.Minute),
		ttl:      ttl,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user and opens a session for it.
func (s *MockService) Signup(_ context.Context, profile model.Profile) (*model.Session, error) {
	email := normalizeEmail(profile.Email)
	if email == "" || profile.Password == "" {
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return nil, ErrUserExists
	}
	now := time.Now()
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = displayName(email)
	}
	user := &model.User{Email: email, Name: name, CreatedAt: now, UpdatedAt: now}
	s.users[email] = user
	if err := s.save(); err != nil {
		delete(s.users, email)
		return nil, err
	}
	return s.openSession(user), nil
}

// Login opens a session. Unknown emails are registered on the fly, since
// the password is never checked.
func (s *MockService) Login(_ context.Context, creds model.Credentials) (*model.Session, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		now := time.Now()
		user = &model.User{Email: email, Name: displayName(email), CreatedAt: now, UpdatedAt: now}
		s.users[email] = user
		if err := s.save(); err != nil {
			delete(s.users, email)
			return nil, err
		}
	}
	return s.openSession(user), nil
}

// Logout ends a session.
func (s *MockService) Logout(_ context.Context, token string) error {
	if _, ok := s.sessions.Get(token); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(token)
	return nil
}

// Current returns a copy of the user behind a session.
func (s *MockService) Current(_ context.Context, token string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	u := *user
	return &u, nil
}

// SetPremium flips the mocked premium flag for the session's user.
func (s *MockService) SetPremium(_ context.Context, token string, premium bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	prev := *user
	user.Premium = premium
	user.UpdatedAt = time.Now()
	if err := s.save(); err != nil {
		*user = prev
		return nil, err
	}
	u := *user
	return &u, nil
}

func (s *MockService) lookup(token string) (*model.User, error) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	user, ok := s.users[v.(string)]
	if !ok {
		s.sessions.Delete(token)
		return nil, ErrSessionNotFound
	}
	return user, nil
}

func (s *MockService) openSession(user *model.User) *model.Session {
	token := uuid.NewString()
	s.sessions.Set(token, user.Email, s.ttl)
	return &model.Session{
		Token:     token,
		User:      *user,
		ExpiresAt: time.Now().Add(s.ttl),
	}
}

func (s *MockService) save() error {
	if s.filePath == "" {
		return nil
	}
	if err := SaveUsers(s.filePath, s.users); err != nil {
		log.Error().Err(err).Str("file", s.filePath).Msg("save user store")
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func displayName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
