package middleware

import (
	"context"
	"net/http"

	"folio/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// identityKey is the context key for the authenticated identity.
	identityKey contextKey = "identity"

	// AuthCookieName is the httpOnly cookie carrying the signed identity token.
	AuthCookieName = "auth_token"
)

// RequireAuth rejects requests that do not carry a valid identity token in
// the auth cookie. A missing cookie yields 401 UNAUTHORIZED; a cookie whose
// token fails verification (bad signature, expired, malformed) yields 401
// INVALID_TOKEN. On success the decoded identity is attached to the request
// context for handlers to read via IdentityFromCtx.
func RequireAuth(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			identity := signer.Verify(cookie.Value)
			if identity == nil {
				writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but never
// rejects. Used by public routes that personalize for a logged-in owner.
func OptionalAuth(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
				if identity := signer.Verify(cookie.Value); identity != nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromCtx extracts the authenticated identity from the request
// context. Returns nil if the request is unauthenticated.
func IdentityFromCtx(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

// SetAuthCookie stores the signed identity token in the httpOnly auth
// cookie. Max-age tracks the token's own expiry so the cookie and the token
// die together.
func SetAuthCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// ClearAuthCookie expires the auth cookie immediately. Uses the same path
// attribute the cookie was set with.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
