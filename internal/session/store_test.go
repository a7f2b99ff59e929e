package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"salonctl/internal/models"
	"salonctl/internal/salon"
	"salonctl/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// fakeAuth is an AuthClient that answers from canned values.
type fakeAuth struct {
	session   *models.Session
	loginErr  error
	logoutErr error
	logouts   int
}

func (f *fakeAuth) Login(ctx context.Context, creds salon.Credentials) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.session, nil
}

func (f *fakeAuth) Register(ctx context.Context, creds salon.Credentials) (*models.Session, error) {
	return f.Login(ctx, creds)
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestStore(t *testing.T) {
	issued := &models.Session{Token: "tok123", Email: "client@example.com", Role: "CLIENT"}

	t.Run("Login persists the issued session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)
		store.Bind(&fakeAuth{session: issued})

		if store.IsAuthenticated() {
			t.Error("expected unauthenticated before login")
		}

		sess, err := store.Login(context.Background(), salon.Credentials{Email: issued.Email, Password: "secret"})
		if err != nil {
			t.Fatalf("failed to log in: %v", err)
		}
		if sess.Token != "tok123" {
			t.Errorf("unexpected session: %+v", sess)
		}

		if !store.IsAuthenticated() {
			t.Error("expected authenticated after login")
		}

		current, err := store.Current()
		if err != nil {
			t.Fatalf("failed to read session: %v", err)
		}
		if current.Email != issued.Email || current.Role != "CLIENT" {
			t.Errorf("unexpected stored session: %+v", current)
		}
	})

	t.Run("Login failure stores nothing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)
		store.Bind(&fakeAuth{loginErr: shared.ErrAuth})

		_, err := store.Login(context.Background(), salon.Credentials{Email: "x@y.z", Password: "bad"})
		if !errors.Is(err, shared.ErrAuth) {
			t.Errorf("expected ErrAuth, got %v", err)
		}
		if store.IsAuthenticated() {
			t.Error("expected unauthenticated after failed login")
		}
	})

	t.Run("Token yields the stored bearer token", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)
		store.Bind(&fakeAuth{session: issued})

		tok, err := store.Token()
		if err != nil {
			t.Fatalf("failed to read token: %v", err)
		}
		if tok != nil {
			t.Error("expected nil token before login")
		}

		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}

		tok, err = store.Token()
		if err != nil {
			t.Fatalf("failed to read token: %v", err)
		}
		if tok == nil || tok.AccessToken != "tok123" {
			t.Errorf("unexpected token: %+v", tok)
		}
	})

	t.Run("Login replaces any previous session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		auth := &fakeAuth{session: issued}
		store := NewStore(db, 0, nil)
		store.Bind(auth)

		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}

		auth.session = &models.Session{Token: "tok456", Email: "other@example.com", Role: "CLIENT"}
		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in again: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
			t.Fatalf("failed to count sessions: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single session row, got %d", count)
		}

		current, _ := store.Current()
		if current.Token != "tok456" {
			t.Errorf("expected the replacement session, got %+v", current)
		}
	})

	t.Run("Logout clears local state even when the backend fails", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		auth := &fakeAuth{session: issued, logoutErr: shared.ErrServiceUnavailable}
		store := NewStore(db, 0, nil)
		store.Bind(auth)

		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}
		if err := store.SetReservationDone(models.Confirmed{AppointmentTime: "2025-06-02T10:00"}); err != nil {
			t.Fatalf("failed to set reservation: %v", err)
		}

		if err := store.Logout(context.Background()); err != nil {
			t.Fatalf("expected logout to succeed locally, got %v", err)
		}

		if auth.logouts != 1 {
			t.Errorf("expected one backend logout attempt, got %d", auth.logouts)
		}
		if store.IsAuthenticated() {
			t.Error("expected unauthenticated after logout")
		}

		done, _, err := store.Reservation()
		if err != nil {
			t.Fatalf("failed to read reservation: %v", err)
		}
		if done {
			t.Error("expected reservation flag cleared on logout")
		}
	})

	t.Run("inactivity expiry logs out and notifies", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		auth := &fakeAuth{session: issued}
		store := NewStore(db, 20*time.Millisecond, nil)
		store.Bind(auth)

		expired := make(chan struct{})
		store.OnExpire(func() { close(expired) })

		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}

		select {
		case <-expired:
		case <-time.After(2 * time.Second):
			t.Fatal("expected inactivity expiry to fire")
		}

		if store.IsAuthenticated() {
			t.Error("expected unauthenticated after expiry")
		}
		if auth.logouts != 1 {
			t.Errorf("expected one backend logout, got %d", auth.logouts)
		}
	})

	t.Run("Touch rearms the timer", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 60*time.Millisecond, nil)
		store.Bind(&fakeAuth{session: issued})

		expired := make(chan struct{})
		store.OnExpire(func() { close(expired) })

		if _, err := store.Login(context.Background(), salon.Credentials{}); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}

		for range 3 {
			time.Sleep(30 * time.Millisecond)
			store.Touch()
		}

		select {
		case <-expired:
			t.Fatal("expected touches to hold off expiry")
		default:
		}

		if !store.IsAuthenticated() {
			t.Error("expected still authenticated while active")
		}
	})
}

func TestReservation(t *testing.T) {
	t.Run("round trip with snapshot", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)

		done, confirmed, err := store.Reservation()
		if err != nil {
			t.Fatalf("failed to read reservation: %v", err)
		}
		if done || confirmed != nil {
			t.Error("expected clean initial state")
		}

		want := models.Confirmed{
			Category:        models.Barber,
			ProviderName:    "Jean Mbarga",
			OfferingLabel:   "Coupe simple",
			DurationMinutes: 30,
			AppointmentTime: "2025-06-02T10:00",
			Email:           "client@example.com",
		}
		if err := store.SetReservationDone(want); err != nil {
			t.Fatalf("failed to set reservation: %v", err)
		}

		done, confirmed, err = store.Reservation()
		if err != nil {
			t.Fatalf("failed to read reservation: %v", err)
		}
		if !done || confirmed == nil {
			t.Fatal("expected stored reservation")
		}
		if confirmed.ProviderName != want.ProviderName || confirmed.AppointmentTime != want.AppointmentTime {
			t.Errorf("unexpected snapshot: %+v", confirmed)
		}
	})

	t.Run("flag survives a corrupt snapshot", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)
		if _, err := db.Exec("UPDATE booking_state SET reservation_done = 1, snapshot = 'not json' WHERE id = 1"); err != nil {
			t.Fatalf("failed to corrupt snapshot: %v", err)
		}

		done, confirmed, err := store.Reservation()
		if err != nil {
			t.Fatalf("failed to read reservation: %v", err)
		}
		if !done {
			t.Error("expected flag still set")
		}
		if confirmed != nil {
			t.Error("expected no snapshot from corrupt data")
		}
	})

	t.Run("ClearReservation resets both columns", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewStore(db, 0, nil)
		if err := store.SetReservationDone(models.Confirmed{AppointmentTime: "2025-06-02T10:00"}); err != nil {
			t.Fatalf("failed to set reservation: %v", err)
		}
		if err := store.ClearReservation(); err != nil {
			t.Fatalf("failed to clear reservation: %v", err)
		}

		done, confirmed, err := store.Reservation()
		if err != nil {
			t.Fatalf("failed to read reservation: %v", err)
		}
		if done || confirmed != nil {
			t.Error("expected cleared state")
		}
	})
}
