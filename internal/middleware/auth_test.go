package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"folio/internal/auth"
)

func testSigner() *auth.Signer {
	return auth.NewSigner(auth.TokenConfig{Secret: "test-secret", Expiry: "1h"})
}

func decodeErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Success {
		t.Error("error body has success=true")
	}
	return body.Error.Code
}

func TestRequireAuthNoCookie(t *testing.T) {
	signer := testSigner()
	handler := RequireAuth(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if code := decodeErrorCode(t, rr); code != "UNAUTHORIZED" {
		t.Errorf("error code: got %q, want UNAUTHORIZED", code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	signer := testSigner()
	handler := RequireAuth(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an invalid token")
	}))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", func() string {
			other := auth.NewSigner(auth.TokenConfig{Secret: "other-secret", Expiry: "1h"})
			tok, _ := other.Sign(auth.Identity{UserID: uuid.New(), Email: "a@b.c", DisplayName: "A"})
			return tok
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tt.token})
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
			if code := decodeErrorCode(t, rr); code != "INVALID_TOKEN" {
				t.Errorf("error code: got %q, want INVALID_TOKEN", code)
			}
		})
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	signer := testSigner()
	id := auth.Identity{UserID: uuid.New(), Email: "owner@folio.local", DisplayName: "Owner"}
	token, err := signer.Sign(id)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var got *auth.Identity
	handler := RequireAuth(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got == nil {
		t.Fatal("identity not attached to context")
	}
	if got.UserID != id.UserID || got.Email != id.Email || got.DisplayName != id.DisplayName {
		t.Errorf("identity: got %+v, want %+v", got, id)
	}
}

func TestOptionalAuth(t *testing.T) {
	signer := testSigner()
	id := auth.Identity{UserID: uuid.New(), Email: "owner@folio.local", DisplayName: "Owner"}
	token, err := signer.Sign(id)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name         string
		cookie       *http.Cookie
		wantIdentity bool
	}{
		{"no cookie proceeds anonymously", nil, false},
		{"bad token proceeds anonymously", &http.Cookie{Name: AuthCookieName, Value: "junk"}, false},
		{"valid token attaches identity", &http.Cookie{Name: AuthCookieName, Value: token}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *auth.Identity
			handler := OptionalAuth(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IdentityFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/public/settings", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rr.Code)
			}
			if tt.wantIdentity && got == nil {
				t.Error("expected identity in context, got nil")
			}
			if !tt.wantIdentity && got != nil {
				t.Errorf("expected no identity, got %+v", got)
			}
		})
	}
}

func TestAuthCookieHelpers(t *testing.T) {
	rr := httptest.NewRecorder()
	SetAuthCookie(rr, "tok", 3600, true)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != AuthCookieName || c.Value != "tok" {
		t.Errorf("cookie: got %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("auth cookie must be httpOnly")
	}
	if !c.Secure {
		t.Error("auth cookie must be Secure when requested")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Error("auth cookie must be SameSite=Strict")
	}
	if c.MaxAge != 3600 {
		t.Errorf("max-age: got %d, want 3600", c.MaxAge)
	}

	rr2 := httptest.NewRecorder()
	ClearAuthCookie(rr2)
	cleared := rr2.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Error("ClearAuthCookie must expire the cookie")
	}
}
