package salon

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

func TestClient(t *testing.T) {
	t.Run("attaches bearer header when a token is available", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test_token"})
		client := NewClient(srv.URL, "", srv.Client(), tokens)

		if _, err := client.Offerings(context.Background(), models.Barber); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "Bearer test_token" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
	})

	t.Run("omits bearer header without a token source", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		if _, err := client.Offerings(context.Background(), models.Barber); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "" {
			t.Errorf("expected no auth header, got %q", gotAuth)
		}
	})

	t.Run("maps non-2xx reads to ErrFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		_, err := client.Providers(context.Background(), models.Esthetician)
		if !errors.Is(err, shared.ErrFetch) {
			t.Errorf("expected ErrFetch, got %v", err)
		}
	})

	t.Run("maps non-JSON reads to ErrFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		_, err := client.Offerings(context.Background(), models.Barber)
		if !errors.Is(err, shared.ErrFetch) {
			t.Errorf("expected ErrFetch, got %v", err)
		}
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		client := NewClient("http://unused", "", nil, nil)
		if _, err := client.Offerings(context.Background(), models.Category("dj")); err == nil {
			t.Error("expected error for unknown category")
		}
	})
}

func TestCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/haircut/all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]wireOffering{{ID: 1, Type: "Coupe simple", Duration: 30, Price: 5000}})
	})
	mux.HandleFunc("/esthetic/all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]wireOffering{{ID: 7, Type: "Soin visage", Duration: 45, Price: 8000}})
	})
	mux.HandleFunc("/barber/available", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]wireProvider{{ID: "b1", FirstName: "Jean", LastName: "Mbarga", Description: "Fades"}})
	})
	mux.HandleFunc("/esthetician/all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]wireProvider{{ID: "e1", FirstName: "Aline", LastName: "Ngo"}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client(), nil)
	ctx := context.Background()

	t.Run("Offerings", func(t *testing.T) {
		offerings, err := client.Offerings(ctx, models.Barber)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(offerings) != 1 {
			t.Fatalf("expected 1 offering, got %d", len(offerings))
		}
		got := offerings[0]
		if got.Label != "Coupe simple" || got.DurationMinutes != 30 || got.Price != 5000 {
			t.Errorf("unexpected offering mapping: %+v", got)
		}
		if got.Category != models.Barber {
			t.Errorf("expected barber category, got %s", got.Category)
		}

		beauty, err := client.Offerings(ctx, models.Esthetician)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if beauty[0].ID != 7 || beauty[0].Category != models.Esthetician {
			t.Errorf("unexpected beauty offering: %+v", beauty[0])
		}
	})

	t.Run("Providers", func(t *testing.T) {
		barbers, err := client.Providers(ctx, models.Barber)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if barbers[0].DisplayName() != "Jean Mbarga" {
			t.Errorf("expected display name 'Jean Mbarga', got %q", barbers[0].DisplayName())
		}

		estheticians, err := client.Providers(ctx, models.Esthetician)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if estheticians[0].ID != "e1" || estheticians[0].Category != models.Esthetician {
			t.Errorf("unexpected esthetician: %+v", estheticians[0])
		}
	})
}

func TestSlots(t *testing.T) {
	t.Run("returns without network call on empty arguments", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		slots, err := client.Slots(context.Background(), models.Barber, "", "2025-01-01")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if slots != nil {
			t.Errorf("expected nil slots, got %v", slots)
		}

		if _, err := client.Slots(context.Background(), models.Barber, "b1", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if called {
			t.Error("expected no network call for empty arguments")
		}
	})

	t.Run("decodes the wire slot shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/availability/barber/b1/slot") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("date") != "2025-06-02" {
				t.Errorf("unexpected date %q", r.URL.Query().Get("date"))
			}
			// The backend spells the start field "starTime".
			io.WriteString(w, `[{"id":3,"barberId":"b1","starTime":"2025-06-02T10:00","endTime":"2025-06-02T10:30","note":"","available":true}]`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		slots, err := client.Slots(context.Background(), models.Barber, "b1", "2025-06-02")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(slots) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(slots))
		}
		if slots[0].StartTime != "2025-06-02T10:00" || !slots[0].Available {
			t.Errorf("unexpected slot: %+v", slots[0])
		}
		if slots[0].Clock() != "10:00" {
			t.Errorf("expected clock 10:00, got %q", slots[0].Clock())
		}
	})

	t.Run("fetch failure surfaces ErrFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		_, err := client.Slots(context.Background(), models.Esthetician, "e1", "2025-06-02")
		if !errors.Is(err, shared.ErrFetch) {
			t.Errorf("expected ErrFetch, got %v", err)
		}
	})
}

func TestAppointments(t *testing.T) {
	t.Run("CreateAppointment uses the category vocabulary", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/appointment/" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		draft := models.Draft{
			Category:   models.Barber,
			Date:       "2025-06-02",
			Time:       "10:00",
			ProviderID: "b1",
			Offering:   &models.Offering{ID: 4, Label: "Coupe simple", DurationMinutes: 30},
			Email:      "client@example.com",
		}

		if err := client.CreateAppointment(context.Background(), draft); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got["barberId"] != "b1" || got["haircutId"] != float64(4) || got["haircutType"] != "Coupe simple" {
			t.Errorf("unexpected barber payload: %v", got)
		}
		if got["appointmentTime"] != "2025-06-02T10:00" {
			t.Errorf("unexpected appointmentTime: %v", got["appointmentTime"])
		}

		draft.Category = models.Esthetician
		if err := client.CreateAppointment(context.Background(), draft); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got["estheticianId"] != "b1" || got["estheticId"] != float64(4) || got["estheticType"] != "Coupe simple" {
			t.Errorf("unexpected esthetician payload: %v", got)
		}
	})

	t.Run("submit failure surfaces ErrSubmit and no fields are lost", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "conflict", http.StatusConflict)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)
		draft := models.Draft{
			Category:   models.Barber,
			Date:       "2025-06-02",
			Time:       "10:00",
			ProviderID: "b1",
			Offering:   &models.Offering{ID: 4, Label: "Coupe simple"},
			Email:      "client@example.com",
		}

		err := client.CreateAppointment(context.Background(), draft)
		if !errors.Is(err, shared.ErrSubmit) {
			t.Errorf("expected ErrSubmit, got %v", err)
		}
	})

	t.Run("CompletedAppointments decodes history rows", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":1,"appointmentTime":"2025-05-01T09:00","haircutType":"Coupe simple","price":5000,"barberFirstname":"Jean","barberLastname":"Mbarga"}]`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		rows, err := client.CompletedAppointments(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(rows) != 1 || rows[0].ServiceLabel != "Coupe simple" || rows[0].ProviderLastName != "Mbarga" {
			t.Errorf("unexpected history rows: %+v", rows)
		}
	})

	t.Run("CheckIn posts to the dedicated base URL", func(t *testing.T) {
		var gotQuery, gotBody string
		checkin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("email")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
		}))
		defer checkin.Close()

		client := NewClient("http://main-api.invalid", checkin.URL, checkin.Client(), nil)

		if err := client.CheckIn(context.Background(), "client@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotQuery != "client@example.com" {
			t.Errorf("expected email query, got %q", gotQuery)
		}
		if !strings.Contains(gotBody, `"clientEmail":"client@example.com"`) {
			t.Errorf("expected clientEmail body, got %s", gotBody)
		}
	})

	t.Run("CheckIn requires an email", func(t *testing.T) {
		client := NewClient("http://unused", "", nil, nil)
		if err := client.CheckIn(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestAuth(t *testing.T) {
	t.Run("Login returns the issued session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var creds Credentials
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "client@example.com" {
				t.Errorf("unexpected credentials: %+v", creds)
			}
			io.WriteString(w, `{"token":"tok123","email":"client@example.com","role":"CLIENT"}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		session, err := client.Login(context.Background(), Credentials{Email: "client@example.com", Password: "secret"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.Token != "tok123" || session.Role != "CLIENT" {
			t.Errorf("unexpected session: %+v", session)
		}
	})

	t.Run("Login failure surfaces ErrAuth", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		_, err := client.Login(context.Background(), Credentials{Email: "x@y.z", Password: "wrong"})
		if !errors.Is(err, shared.ErrAuth) {
			t.Errorf("expected ErrAuth, got %v", err)
		}
	})

	t.Run("ForgotPassword encodes the email as a query parameter", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query().Get("email")
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		if err := client.ForgotPassword(context.Background(), "client@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "client@example.com" {
			t.Errorf("expected email query, got %q", got)
		}
	})

	t.Run("ChangePassword rejects mismatched confirmation locally", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		err := client.ChangePassword(context.Background(), "tok", "newpass", "different")
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if called {
			t.Error("expected no network call on local validation failure")
		}
	})

	t.Run("Profile round trip", func(t *testing.T) {
		var updated ClientProfile
		mux := http.NewServeMux()
		mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ClientProfile{FirstName: "Paul", LastName: "Essomba", Email: "p@e.cm", Phone: "655000000"})
		})
		mux.HandleFunc("/client/update", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			json.NewDecoder(r.Body).Decode(&updated)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client(), nil)

		profile, err := client.Me(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.FirstName != "Paul" {
			t.Errorf("unexpected profile: %+v", profile)
		}

		profile.Phone = "699999999"
		if err := client.UpdateClient(context.Background(), *profile); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Phone != "699999999" {
			t.Errorf("expected updated phone, got %+v", updated)
		}
	})
}
