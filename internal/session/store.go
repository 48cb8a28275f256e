package session

import (
	"context"
	"encoding/json"
	"sync"

	"crickmart/internal/api"
	"crickmart/internal/domain"
	"crickmart/internal/storage"

	"go.uber.org/zap"
)

// corruptSentinel is the literal string a broken serializer once wrote into
// storage. Its presence means the persisted session is poisoned and must be
// wiped, otherwise future logins deadlock on unparseable state.
const corruptSentinel = "undefined"

// AuthService is the remote surface the store needs. *api.Client satisfies it.
type AuthService interface {
	Login(ctx context.Context, params api.LoginParams) (*api.AuthResult, error)
	Signup(ctx context.Context, params api.SignupParams) (*domain.User, error)
	UpdateUser(ctx context.Context, params api.UserUpdateParams) (*domain.User, error)
}

// Store owns the authentication session: the current user profile and bearer
// token. One instance exists for the application's lifetime; every mutation
// writes through to storage synchronously so a reload never loses the
// session.
type Store struct {
	remote  AuthService
	storage storage.Store
	logger  *zap.Logger

	mu    sync.Mutex
	user  *domain.User
	token string
}

// New creates the store and rehydrates any persisted session. Corrupted
// persisted state (the "undefined" sentinel or unparseable user JSON) is
// self-healed by wiping storage and starting unauthenticated.
func New(remote AuthService, store storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		remote:  remote,
		storage: store,
		logger:  logger,
	}
	s.load()
	return s
}

func (s *Store) load() {
	token, hasToken := s.storage.Get(storage.KeyToken)
	rawUser, hasUser := s.storage.Get(storage.KeyUser)

	if token == corruptSentinel || rawUser == corruptSentinel {
		s.logger.Warn("Corrupted session detected in storage, resetting")
		s.wipe()
		return
	}

	if !hasToken || !hasUser {
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("Failed to parse persisted user, resetting session", zap.Error(err))
		s.wipe()
		return
	}

	s.user = &user
	s.token = token
}

// Login authenticates against the backend. On success the session is set and
// persisted; on failure the session is left untouched and a recoverable
// AuthError is returned.
func (s *Store) Login(ctx context.Context, params api.LoginParams) error {
	result, err := s.remote.Login(ctx, params)
	if err != nil {
		s.logger.Debug("Login failed", zap.Error(err))
		return classify(err, true)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := result.User
	s.user = &user
	s.token = result.AccessToken
	s.persist()

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return nil
}

// Register creates an account. It does not authenticate on success; the
// caller directs the user to the login step. Backend validation errors are
// surfaced unmodified.
func (s *Store) Register(ctx context.Context, params api.SignupParams) error {
	if _, err := s.remote.Signup(ctx, params); err != nil {
		s.logger.Debug("Registration failed", zap.Error(err))
		return classify(err, false)
	}

	s.logger.Info("User registered", zap.String("mobile_phone", params.MobilePhone))
	return nil
}

// UpdateProfile sends a profile patch. On success the server's returned
// record overwrites the persisted user; the server is authoritative.
func (s *Store) UpdateProfile(ctx context.Context, params api.UserUpdateParams) error {
	updated, err := s.remote.UpdateUser(ctx, params)
	if err != nil {
		s.logger.Debug("Profile update failed", zap.Error(err))
		return classify(err, false)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = updated
	s.persist()

	s.logger.Info("Profile updated", zap.String("user_id", updated.ID))
	return nil
}

// Logout clears the in-memory and persisted session unconditionally. It is
// idempotent and always succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipe()
	s.logger.Info("User logged out")
}

// HandleUnauthorized tears down the in-memory session after the request
// pipeline reports a rejected token. Storage is already cleared by the
// pipeline; wiping again keeps this safe to call on its own.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipe()
}

// User returns a copy of the authenticated user, or nil.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a session token is present. It does not
// validate the token remotely; that is the request pipeline's job.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// persist writes the session through to storage. Callers hold s.mu.
func (s *Store) persist() {
	if err := s.storage.Set(storage.KeyToken, s.token); err != nil {
		s.logger.Error("Failed to persist token", zap.Error(err))
	}

	raw, err := json.Marshal(s.user)
	if err != nil {
		s.logger.Error("Failed to encode user for storage", zap.Error(err))
		return
	}
	if err := s.storage.Set(storage.KeyUser, string(raw)); err != nil {
		s.logger.Error("Failed to persist user", zap.Error(err))
	}
}

// wipe clears memory and storage. Callers hold s.mu or run before the store
// is shared.
func (s *Store) wipe() {
	s.user = nil
	s.token = ""
	if err := s.storage.Remove(storage.KeyToken); err != nil {
		s.logger.Error("Failed to remove persisted token", zap.Error(err))
	}
	if err := s.storage.Remove(storage.KeyUser); err != nil {
		s.logger.Error("Failed to remove persisted user", zap.Error(err))
	}
}
