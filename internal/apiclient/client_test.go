package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

type fixedToken string

func (f fixedToken) Token() string { return string(f) }

func TestBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appointments/my" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]models.Appointment{{ID: "a1", Status: models.StatusPending}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", WithTokenSource(fixedToken("t1")))
	list, err := c.MyAppointments(context.Background())
	if err != nil {
		t.Fatalf("MyAppointments: %v", err)
	}
	if len(list) != 1 || list[0].ID != "a1" {
		t.Fatalf("unexpected list %+v", list)
	}
	if gotAuth != "Bearer t1" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestAuthenticatedCallWithoutTokenSkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ChatMessages(context.Background(), "apt-1"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if _, err := c.CurrentUser(context.Background(), ""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestCurrentUserUsesExplicitToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer persisted" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","role":"doctor","full_name":"Dr. A","email":"doc@x.com"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(fixedToken("other")))
	u, err := c.CurrentUser(context.Background(), "persisted")
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.Role != models.RoleDoctor || u.Email != "doc@x.com" {
		t.Fatalf("unexpected user %+v", u)
	}

	_, err = c.CurrentUser(context.Background(), "stale")
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if Message(err, "x") != "Invalid token" {
		t.Fatalf("unexpected message %q", Message(err, "x"))
	}
}

func TestReviewDoctorSendsStatusQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/doctors/d 1/approve" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
		}
		if r.URL.Query().Get("status") != "approved" {
			t.Errorf("status query = %q", r.URL.Query().Get("status"))
		}
		_, _ = w.Write([]byte(`{"user_id":"d 1","status":"approved"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(fixedToken("t")))
	p, err := c.ReviewDoctor(context.Background(), "d 1", models.DoctorApproved)
	if err != nil {
		t.Fatalf("ReviewDoctor: %v", err)
	}
	if p.Status != models.DoctorApproved {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.Specialties(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if LoginMessage(err) != "Cannot reach the server. Please check your network connection!" {
		t.Fatalf("unexpected login message %q", LoginMessage(err))
	}
}

func TestEmptyIDRejected(t *testing.T) {
	c := New("http://127.0.0.1:1", WithTokenSource(fixedToken("t")))
	if _, err := c.Doctor(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty doctor id")
	}
	if _, err := c.UpdateAppointmentStatus(context.Background(), "", models.StatusConfirmed); err == nil {
		t.Fatal("expected error for empty appointment id")
	}
}
