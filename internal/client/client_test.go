package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

// stubPortal fakes the auth endpoints. brokenMe simulates a server that
// accepts the login but then refuses the cookie on /auth/me.
type stubPortal struct {
	profile  auth.Profile
	brokenMe bool
}

func (p *stubPortal) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != p.profile.Email || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid_credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-token", Path: "/"})
		_ = json.NewEncoder(w).Encode(p.profile)
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if p.brokenMe || err != nil || cookie.Value != "session-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "not_authenticated"})
			return
		}
		_ = json.NewEncoder(w).Encode(p.profile)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return mux
}

func newStubClient(t *testing.T, portal *stubPortal) *Client {
	t.Helper()
	app := httptest.NewServer(portal.handler())
	t.Cleanup(app.Close)
	c, err := New(app.URL)
	if err != nil {
		t.Fatalf("client error: %v", err)
	}
	return c
}

func testProfile() auth.Profile {
	return auth.Profile{ID: "u1", Name: "A", Email: "a@x.com", Role: model.RoleStudent}
}

func TestLoginFillsCacheAfterConfirmation(t *testing.T) {
	c := newStubClient(t, &stubPortal{profile: testProfile()})

	profile, err := c.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if profile.ID != "u1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	state, cached := c.Sessions().Current()
	if state != StateAuthenticated {
		t.Fatalf("expected authenticated cache, got %v", state)
	}
	if cached == nil || cached.ID != "u1" {
		t.Fatalf("unexpected cached profile: %+v", cached)
	}
}

func TestLoginFailureLeavesCacheUntouched(t *testing.T) {
	c := newStubClient(t, &stubPortal{profile: testProfile()})

	_, err := c.Login(context.Background(), "a@x.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected a 401 APIError, got %v", err)
	}
	if state, _ := c.Sessions().Current(); state == StateAuthenticated {
		t.Fatalf("failed login must not authenticate the cache")
	}
}

func TestLoginRequiresServerConfirmation(t *testing.T) {
	// The login answer alone must not be trusted: /auth/me has the last word.
	c := newStubClient(t, &stubPortal{profile: testProfile(), brokenMe: true})

	_, err := c.Login(context.Background(), "a@x.com", "secret")
	if err == nil {
		t.Fatalf("expected an error when the session cannot be confirmed")
	}
	if state, _ := c.Sessions().Current(); state != StateUnauthenticated {
		t.Fatalf("unconfirmed login must leave a signed-out cache, got %v", state)
	}
}

func TestLogoutClearsBeforeNavigate(t *testing.T) {
	c := newStubClient(t, &stubPortal{profile: testProfile()})
	if _, err := c.Login(context.Background(), "a@x.com", "secret"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	var stateAtNavigate State = StateAuthenticated
	err := c.Logout(context.Background(), func() {
		stateAtNavigate, _ = c.Sessions().Current()
	})
	if err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if stateAtNavigate != StateUnauthenticated {
		t.Fatalf("navigation must observe a signed-out cache, got %v", stateAtNavigate)
	}

	// The cookie is gone: a later confirmation stays signed out.
	if _, err := c.Me(context.Background()); err == nil {
		t.Fatalf("expected 401 after logout")
	}
	if state, _ := c.Sessions().Current(); state != StateUnauthenticated {
		t.Fatalf("expected unauthenticated cache after logout")
	}
}

func TestMeEndsLoadingOnUnauthorized(t *testing.T) {
	c := newStubClient(t, &stubPortal{profile: testProfile()})

	if state, _ := c.Sessions().Current(); state != StateLoading {
		t.Fatalf("fresh client must start loading, got %v", state)
	}
	_, err := c.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected a 401 APIError, got %v", err)
	}
	if state, _ := c.Sessions().Current(); state != StateUnauthenticated {
		t.Fatalf("a 401 must end the loading phase, got %v", state)
	}
}
