package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/demoapps/rbac-portal/internal/api/metrics"
	"github.com/demoapps/rbac-portal/internal/core/domain"
	"github.com/demoapps/rbac-portal/internal/core/ports"
)

// AuthService owns the process-wide session: exactly zero or one identity is
// current at a time. It is the only writer of the durable slot; every
// mutation writes the slot first, then the in-memory value, then notifies
// subscribers. The slot is read exactly once, at construction.
type AuthService struct {
	client  *http.Client
	baseURL string
	storage ports.SessionStorage
	log     zerolog.Logger

	mu      sync.RWMutex
	current *domain.User
	subs    map[int]chan *domain.User
	nextSub int
}

// NewAuthService builds the session store and seeds it from the durable slot.
// A missing, empty, or corrupt slot seeds "no identity"; corruption is logged
// and swallowed, never surfaced.
func NewAuthService(ctx context.Context, client *http.Client, baseURL string, storage ports.SessionStorage, log zerolog.Logger) *AuthService {
	s := &AuthService{
		client:  client,
		baseURL: baseURL,
		storage: storage,
		log:     log,
		subs:    make(map[int]chan *domain.User),
	}
	s.current = s.loadStored(ctx)
	if s.current != nil {
		metrics.SessionActive.Set(1)
	}
	return s
}

func (s *AuthService) loadStored(ctx context.Context) *domain.User {
	raw, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session slot unreadable, starting without a session")
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn().Err(err).Msg("stored session is corrupt, starting without a session")
		return nil
	}
	return &user
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login authenticates through the transport chain. Any failure, transport or
// backend alike, collapses to ErrInvalidCredentials so the caller learns
// nothing about which part of the credentials was wrong. State is only
// touched on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	body, err := json.Marshal(loginPayload{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("login request failed")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Warn().Err(err).Msg("login response undecodable")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user := result.User.WithoutPassword()
	user.Token = result.Token

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Save(ctx, raw); err != nil {
		// Demo-grade persistence: the session still works for this process,
		// it just won't survive a restart.
		s.log.Warn().Err(err).Msg("session slot write failed")
	}

	s.setCurrent(&user)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionActive.Set(1)
	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login succeeded")
	return &user, nil
}

// Logout clears the durable slot and the in-memory value unconditionally.
// Safe to call with no active session.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session slot clear failed")
	}
	s.setCurrent(nil)
	metrics.SessionActive.Set(0)
}

// Current returns the current identity, or nil when nobody is logged in.
func (s *AuthService) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *AuthService) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *AuthService) HasRole(role domain.Role) bool {
	current := s.Current()
	return current != nil && current.Role == role
}

// Subscribe registers a latest-value observer of session changes. The channel
// is seeded with the current value; bursts coalesce so a slow reader always
// sees the newest state. The returned func unsubscribes.
func (s *AuthService) Subscribe() (<-chan *domain.User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan *domain.User, 1)
	ch <- s.current
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *AuthService) setCurrent(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = user
	for _, ch := range s.subs {
		// Drop the stale value, if any; the channel has capacity 1 and all
		// sends happen under the lock, so this send cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- user
	}
}
