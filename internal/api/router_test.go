package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/demoapps/rbac-portal/internal/core/service"
	"github.com/demoapps/rbac-portal/internal/infrastructure/storage"
	"github.com/demoapps/rbac-portal/internal/transport"
)

// newPortal wires the portal exactly as cmd/portal does, with a fast backend
// delay and a throwaway session file.
func newPortal(t *testing.T) *httptest.Server {
	t.Helper()

	// Each portal registers its middleware collectors in the default registry;
	// swap in a fresh one so back-to-back portals don't collide.
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	slot := storage.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	backend := transport.NewFakeBackend(transport.DefaultRegistry(), time.Millisecond, nil)
	bearer := &transport.BearerTransport{Next: backend}
	client := &http.Client{Transport: bearer}

	sessions := service.NewAuthService(context.Background(), client, "http://demo.local", slot, zerolog.Nop())
	bearer.Sessions = sessions
	users := service.NewUserService(client, "http://demo.local")

	srv := httptest.NewServer(NewRouter(sessions, users, slot, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

// noRedirects returns a client that reports redirects instead of following them.
func noRedirects() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postLogin(t *testing.T, base, username, password string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"username":"` + username + `","password":"` + password + `"}`)
	resp, err := http.Post(base+"/login", "application/json", body)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	return resp
}

func TestPortal_UnauthenticatedNavigation(t *testing.T) {
	srv := newPortal(t)
	client := noRedirects()

	for _, path := range []string{"/profile", "/admin/users"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, resp.StatusCode)
		}
		location, err := url.Parse(resp.Header.Get("Location"))
		if err != nil {
			t.Fatalf("bad location: %v", err)
		}
		if location.Path != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %s", path, location.Path)
		}
		if got := location.Query().Get("returnUrl"); got != path {
			t.Fatalf("%s: expected returnUrl %q, got %q", path, path, got)
		}
	}
}

func TestPortal_AdminFlow(t *testing.T) {
	srv := newPortal(t)

	resp := postLogin(t, srv.URL, "admin", "admin")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	// The session is process-wide; no cookie needed.
	users, err := http.Get(srv.URL + "/admin/users")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	defer users.Body.Close()
	if users.StatusCode != http.StatusOK {
		t.Fatalf("list users: expected 200, got %d", users.StatusCode)
	}

	profile, err := http.Get(srv.URL + "/profile")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	profile.Body.Close()
	if profile.StatusCode != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", profile.StatusCode)
	}
}

func TestPortal_UserDeniedAdminRoute(t *testing.T) {
	srv := newPortal(t)
	client := noRedirects()

	resp := postLogin(t, srv.URL, "user", "user")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	denied, err := client.Get(srv.URL + "/admin/users")
	if err != nil {
		t.Fatalf("admin route: %v", err)
	}
	denied.Body.Close()
	if denied.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", denied.StatusCode)
	}
	// Mismatched users go to their own home.
	if got := denied.Header.Get("Location"); got != "/profile" {
		t.Fatalf("expected redirect to /profile, got %s", got)
	}
}

func TestPortal_WrongPassword(t *testing.T) {
	srv := newPortal(t)

	resp := postLogin(t, srv.URL, "admin", "wrong")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestPortal_LogoutEndsSession(t *testing.T) {
	srv := newPortal(t)
	client := noRedirects()

	resp := postLogin(t, srv.URL, "admin", "admin")
	resp.Body.Close()

	logout, err := http.Post(srv.URL+"/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	logout.Body.Close()
	if logout.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", logout.StatusCode)
	}

	after, err := client.Get(srv.URL + "/profile")
	if err != nil {
		t.Fatalf("profile after logout: %v", err)
	}
	after.Body.Close()
	if after.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 after logout, got %d", after.StatusCode)
	}
}
