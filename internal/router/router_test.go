package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/store"
)

// memUserStore is a minimal in-memory user store for routing tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.AdminUser
}

func (m *memUserStore) FindByEmail(email string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) FindByID(id uuid.UUID) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (m *memUserStore) UpdatePasswordHash(id uuid.UUID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].PasswordHash = newHash
	return nil
}

func (m *memUserStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].TOTPSecret = &secret
	return nil
}

func (m *memUserStore) EnableTOTP(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].TOTPEnabled = true
	return nil
}

func (m *memUserStore) DisableTOTP(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].TOTPSecret = nil
	m.users[id].TOTPEnabled = false
	return nil
}

const (
	testEmail    = "owner@example.com"
	testPassword = "StrongP@ssw0rd!123"
)

// newTestRouter builds the full router with an in-memory user store. The
// content stores are backed by a nil database: any test that reaches them
// panics, which is exactly the point for middleware-ordering assertions.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &memUserStore{users: map[uuid.UUID]*models.AdminUser{}}
	u := &models.AdminUser{
		ID:           uuid.New(),
		Email:        testEmail,
		PasswordHash: hash,
		DisplayName:  "Site Owner",
	}
	users.users[u.ID] = u

	signer := auth.NewSigner(auth.TokenConfig{Secret: "test-secret", Expiry: "1h"})
	authHandlers := handlers.NewAuth(users, signer, false)
	admin := handlers.NewAdmin(store.NewSettingsStore(nil), store.NewProjectStore(nil),
		store.NewWritingStore(nil), store.NewAnalyticsStore(nil), nil, nil)
	public := handlers.NewPublic(store.NewSettingsStore(nil), store.NewProjectStore(nil),
		store.NewWritingStore(nil), store.NewAnalyticsStore(nil), nil)

	return New(signer, authHandlers, admin, public)
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body %q)", err, rr.Body.String())
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestEndToEndAuthFlow(t *testing.T) {
	r := newTestRouter(t)

	// Login with valid credentials sets both cookies.
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"owner@example.com","password":"StrongP@ssw0rd!123"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRR := httptest.NewRecorder()
	r.ServeHTTP(loginRR, loginReq)

	if loginRR.Code != http.StatusOK {
		t.Fatalf("login status: got %d (body %q)", loginRR.Code, loginRR.Body.String())
	}

	var authCookie, csrfCookie *http.Cookie
	for _, c := range loginRR.Result().Cookies() {
		switch c.Name {
		case middleware.AuthCookieName:
			authCookie = c
		case middleware.CSRFCookieName:
			csrfCookie = c
		}
	}
	if authCookie == nil || csrfCookie == nil {
		t.Fatal("login did not set both cookies")
	}

	// Me with the identity cookie returns the logged-in user.
	meReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meReq.AddCookie(authCookie)
	meRR := httptest.NewRecorder()
	r.ServeHTTP(meRR, meReq)

	if meRR.Code != http.StatusOK {
		t.Fatalf("me status: got %d (body %q)", meRR.Code, meRR.Body.String())
	}
	if !strings.Contains(meRR.Body.String(), testEmail) {
		t.Errorf("me body missing email: %q", meRR.Body.String())
	}

	// A protected mutation without the CSRF header is rejected before any
	// business logic runs: the admin stores here would panic if reached.
	putReq := httptest.NewRequest(http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"siteName":"x"}`))
	putReq.AddCookie(authCookie)
	putReq.AddCookie(csrfCookie)
	putRR := httptest.NewRecorder()
	r.ServeHTTP(putRR, putReq)

	if putRR.Code != http.StatusForbidden {
		t.Fatalf("csrf-less PUT status: got %d, want 403", putRR.Code)
	}
	if code := errorCode(t, putRR); code != "CSRF_MISSING" {
		t.Errorf("error code: got %q, want CSRF_MISSING", code)
	}

	// A mismatched header is distinguished from a missing one.
	putReq = httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{}`))
	putReq.AddCookie(authCookie)
	putReq.AddCookie(csrfCookie)
	putReq.Header.Set(middleware.CSRFHeaderName, "not-the-cookie-value")
	putRR = httptest.NewRecorder()
	r.ServeHTTP(putRR, putReq)

	if putRR.Code != http.StatusForbidden {
		t.Fatalf("mismatched CSRF status: got %d, want 403", putRR.Code)
	}
	if code := errorCode(t, putRR); code != "CSRF_INVALID" {
		t.Errorf("error code: got %q, want CSRF_INVALID", code)
	}

	// Logout with the CSRF pair clears both cookies.
	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	logoutReq.AddCookie(authCookie)
	logoutReq.AddCookie(csrfCookie)
	logoutReq.Header.Set(middleware.CSRFHeaderName, csrfCookie.Value)
	logoutRR := httptest.NewRecorder()
	r.ServeHTTP(logoutRR, logoutReq)

	if logoutRR.Code != http.StatusOK {
		t.Fatalf("logout status: got %d (body %q)", logoutRR.Code, logoutRR.Body.String())
	}
	for _, c := range logoutRR.Result().Cookies() {
		if c.MaxAge >= 0 {
			t.Errorf("cookie %s not expired on logout", c.Name)
		}
	}

	// Me without the identity cookie is unauthorized again.
	meReq = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meRR = httptest.NewRecorder()
	r.ServeHTTP(meRR, meReq)

	if meRR.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: got %d, want 401", meRR.Code)
	}
	if code := errorCode(t, meRR); code != "UNAUTHORIZED" {
		t.Errorf("error code: got %q, want UNAUTHORIZED", code)
	}
}

func TestAdminRequiresAuthBeforeCSRF(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if code := errorCode(t, rr); code != "UNAUTHORIZED" {
		t.Errorf("error code: got %q, want UNAUTHORIZED", code)
	}
}

func TestEventsBeaconSkipsCSRF(t *testing.T) {
	r := newTestRouter(t)

	// An invalid body proves the request got past the CSRF fence and into
	// the handler's own validation.
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	if code := errorCode(t, rr); code != "VALIDATION_ERROR" {
		t.Errorf("error code: got %q, want VALIDATION_ERROR", code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	r := newTestRouter(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < loginRateLimit+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"owner@example.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:4000"
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Errorf("status after %d attempts: got %d, want 429", loginRateLimit+1, last.Code)
	}
	if code := errorCode(t, last); code != "RATE_LIMITED" {
		t.Errorf("error code: got %q, want RATE_LIMITED", code)
	}
}
