// Package session owns the authentication session: the state machine that
// persists and refreshes the credential token across runs. It is the only
// writer of the persisted token.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"paprikasync/internal/client/api"
	"paprikasync/internal/client/models"
	"paprikasync/internal/client/repositories/metadata"
	"paprikasync/internal/logging"
)

// State is the session lifecycle phase.
type State int

const (
	// Anonymous: no usable credential.
	Anonymous State = iota
	// Refreshing: a persisted token exists and its owner has not been
	// re-fetched yet.
	Refreshing
	// Authenticated: token and user record are both known.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Refreshing:
		return "refreshing"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// tokenKey is where the credential lives in the metadata store.
const tokenKey = "token"

// Store is the session state machine.
type Store struct {
	api  api.API
	repo metadata.Repository
	log  logging.Logger

	mu        sync.Mutex
	state     State
	user      *models.User
	token     string
	refreshed bool // the one-shot who-am-I has been attempted
}

// New reads the persisted token and decides the boot state: Refreshing when
// a well-formed token is present, Anonymous otherwise. The read is
// synchronous so the very first consumer already sees the right state.
func New(ctx context.Context, apiClient api.API, repo metadata.Repository, log logging.Logger) *Store {
	s := &Store{api: apiClient, repo: repo, log: log, state: Anonymous}

	raw, err := repo.Get(ctx, tokenKey)
	if err != nil {
		log.Warn(ctx, "reading persisted token", "error", err)
		return s
	}
	token := string(raw)
	if token == "" {
		return s
	}
	// Tokens are opaque to the server contract but always UUID-shaped;
	// anything else in the store is garbage, not a session.
	if _, err := uuid.Parse(token); err != nil {
		log.Warn(ctx, "ignoring malformed persisted token")
		return s
	}

	s.token = token
	s.state = Refreshing
	apiClient.SetToken(token)
	log.Debug(ctx, "boot with persisted token, session refreshing")
	return s
}

// Refresh performs the one-shot who-am-I for a restored token. It is a no-op
// unless the session is Refreshing and the fetch has not been attempted, so
// any number of consumers may call it. A failure is not surfaced: the session
// silently falls back to Anonymous and all persisted state is wiped.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.state != Refreshing || s.refreshed {
		s.mu.Unlock()
		return
	}
	s.refreshed = true
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Info(ctx, "session refresh failed, logging out", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.user = user
	s.state = Authenticated
	s.mu.Unlock()
	s.log.Debug(ctx, "session refreshed", "email", user.Email)
}

// Login authenticates with the remote service, persists the returned token,
// and moves the session to Authenticated. Domain errors (invalid_password,
// invalid_paprika_login) come back as *api.Error.
func (s *Store) Login(ctx context.Context, email, password string) error {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, tokenKey, []byte(user.Token)); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.api.SetToken(user.Token)

	s.mu.Lock()
	s.state = Authenticated
	s.user = user
	s.token = user.Token
	s.refreshed = true
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "email", user.Email)
	return nil
}

// Logout resets the session to Anonymous and wipes every locally persisted
// key, not just the token.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing local state", "error", err)
	}
	s.api.ClearToken()

	s.mu.Lock()
	s.state = Anonymous
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
}

// Rename updates the profile name and replaces the user record in place.
// The token is untouched.
func (s *Store) Rename(ctx context.Context, name string) error {
	user, err := s.api.UpdateProfile(ctx, name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == Authenticated {
		s.user = user
	}
	s.mu.Unlock()
	return nil
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoggedIn reports whether the session is Authenticated.
func (s *Store) LoggedIn() bool {
	return s.State() == Authenticated
}

// Refreshing reports whether a refresh-on-boot is still owed.
func (s *Store) Refreshing() bool {
	return s.State() == Refreshing
}

// User returns the current user record, nil unless Authenticated.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current credential token, "" when Anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// PartnerCode returns the user's own partner code, "" unless Authenticated.
func (s *Store) PartnerCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.PartnerCode
}
