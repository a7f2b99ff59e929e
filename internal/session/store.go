package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"salonctl/internal/models"
	"salonctl/internal/salon"
	"salonctl/internal/shared"
)

// DefaultInactivity is the idle window after which an authenticated session
// is terminated.
const DefaultInactivity = 30 * time.Minute

// AuthClient is the slice of the backend API the store needs for login,
// registration and logout.
type AuthClient interface {
	Login(ctx context.Context, creds salon.Credentials) (*models.Session, error)
	Register(ctx context.Context, creds salon.Credentials) (*models.Session, error)
	Logout(ctx context.Context) error
}

// Store persists the authenticated session and the reservation flag in the
// local database, and owns the inactivity timer.
//
// Store implements [oauth2.TokenSource]: an unauthenticated store yields a
// nil token rather than an error, so requests simply go out without a bearer
// header.
type Store struct {
	db         *sql.DB
	api        AuthClient
	logger     *log.Logger
	inactivity time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	onExpire func()
}

// NewStore creates a session store on the given database.
//
// inactivity <= 0 selects [DefaultInactivity]. The API client is attached
// afterwards with [Store.Bind] because the client itself needs the store as
// its token source.
func NewStore(db *sql.DB, inactivity time.Duration, logger *log.Logger) *Store {
	if inactivity <= 0 {
		inactivity = DefaultInactivity
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Store{
		db:         db,
		inactivity: inactivity,
		logger:     logger,
	}
}

// Bind attaches the backend client used for login, registration and logout.
func (s *Store) Bind(api AuthClient) {
	s.api = api
}

// SetLogger swaps the store's logger.
func (s *Store) SetLogger(logger *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// OnExpire registers a callback invoked after the inactivity timer has fired
// and local state has been cleared. Used by the UI to fall back to the login
// view.
func (s *Store) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// Current returns the stored session, or nil when no session is stored.
func (s *Store) Current() (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow("SELECT token, email, role FROM sessions ORDER BY created_at DESC LIMIT 1").
		Scan(&sess.Token, &sess.Email, &sess.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return &sess, nil
}

// IsAuthenticated reports whether a session token is stored locally.
func (s *Store) IsAuthenticated() bool {
	sess, err := s.Current()
	return err == nil && sess != nil && sess.Token != ""
}

// Token implements [oauth2.TokenSource] over the stored session.
func (s *Store) Token() (*oauth2.Token, error) {
	sess, err := s.Current()
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == "" {
		return nil, nil
	}
	return &oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}, nil
}

// Login authenticates against the backend and persists the issued session.
func (s *Store) Login(ctx context.Context, creds salon.Credentials) (*models.Session, error) {
	sess, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.save(sess); err != nil {
		return nil, err
	}
	s.Touch()
	return sess, nil
}

// Register creates an account and persists the issued session.
func (s *Store) Register(ctx context.Context, creds salon.Credentials) (*models.Session, error) {
	sess, err := s.api.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.save(sess); err != nil {
		return nil, err
	}
	s.Touch()
	return sess, nil
}

// Logout ends the session.
//
// The backend call is best effort: a network failure is logged and local
// state is cleared anyway. The reservation flag and snapshot go with it.
func (s *Store) Logout(ctx context.Context) error {
	if s.api != nil {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
		}
	}

	s.stopTimer()

	if err := s.clear(); err != nil {
		return err
	}
	return s.ClearReservation()
}

// Touch rearms the inactivity timer. Call on every user interaction while
// authenticated; a no-op otherwise.
func (s *Store) Touch() {
	if !s.IsAuthenticated() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.inactivity, s.expire)
}

// save replaces any stored session with the given one.
func (s *Store) save(sess *models.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO sessions (id, token, email, role) VALUES (?, ?, ?, ?)",
		shared.GenerateID(), sess.Token, sess.Email, sess.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return tx.Commit()
}

// clear removes every stored session row.
func (s *Store) clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// expire runs when the inactivity window elapses.
func (s *Store) expire() {
	s.logger.Info("session expired after inactivity", "window", s.inactivity)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Logout(ctx); err != nil {
		s.logger.Error("failed to clear expired session", "error", err)
	}

	s.mu.Lock()
	fn := s.onExpire
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// stopTimer cancels a pending inactivity expiry, if any.
func (s *Store) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
