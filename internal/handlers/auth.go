package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"folio/internal/auth"
	"folio/internal/middleware"
	"folio/internal/models"
)

// totpIssuer is the name shown in authenticator apps.
const totpIssuer = "Folio"

// UserStore is the persistence surface the auth handlers need. The concrete
// store satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	FindByEmail(email string) (*models.AdminUser, error)
	FindByID(id uuid.UUID) (*models.AdminUser, error)
	UpdatePasswordHash(id uuid.UUID, newHash string) error
	SetTOTPSecret(id uuid.UUID, secret string) error
	EnableTOTP(id uuid.UUID) error
	DisableTOTP(id uuid.UUID) error
}

// Auth groups the authentication HTTP handlers: login, logout, me,
// change-password and the optional TOTP second factor.
type Auth struct {
	users  UserStore
	signer *auth.Signer
	secure bool // set Secure on cookies (production)
}

// NewAuth creates a new Auth handler group.
func NewAuth(users UserStore, signer *auth.Signer, secure bool) *Auth {
	return &Auth{users: users, signer: signer, secure: secure}
}

// requireIdentity pulls the authenticated identity out of the context. The
// auth middleware guarantees it on admin routes; the guard keeps a
// misconfigured route from panicking.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity := middleware.IdentityFromCtx(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return nil, false
	}
	return identity, true
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode"`
}

// Login authenticates an admin and establishes the cookie pair: the httpOnly
// identity cookie and the script-readable CSRF cookie. A missing account and
// a wrong password produce the identical response, so the endpoint never
// reveals whether an email is registered. The same applies to the second
// factor when 2FA is enabled.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) || req.Password == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(strings.TrimSpace(req.TOTPCode), *user.TOTPSecret) {
			respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
	}

	token, err := a.signer.Sign(auth.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		slog.Error("token sign failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	csrfToken, err := middleware.IssueCSRFToken()
	if err != nil {
		slog.Error("csrf issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	middleware.SetAuthCookie(w, token, int(a.signer.Expiry().Seconds()), a.secure)
	middleware.SetCSRFCookie(w, csrfToken, a.secure)

	slog.Info("admin login", "user", user.Email)
	respond(w, http.StatusOK, map[string]any{"user": user.Public()})
}

// Logout clears both cookies. Always succeeds and is idempotent; the
// identity token itself stays valid until natural expiry since there is no
// server-side revocation list.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w)
	middleware.ClearCSRFCookie(w)
	respond(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

// Me returns the authenticated user's current record. The record is
// re-fetched rather than echoed from the token: a deleted account fails here
// with USER_NOT_FOUND even while its token is still structurally valid.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		slog.Error("me lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		return
	}

	respond(w, http.StatusOK, map[string]any{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword replaces the stored hash after re-verifying the current
// password. The re-check means a stolen but still-valid session cannot
// silently lock out the legitimate owner. Outstanding tokens are not
// invalidated.
func (a *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Current and new password are required")
		return
	}

	if msg := auth.CheckStrength(req.NewPassword); msg != "" {
		respondError(w, http.StatusBadRequest, "WEAK_PASSWORD", msg)
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		slog.Error("change password lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		return
	}

	if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "INVALID_PASSWORD", "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if err := a.users.UpdatePasswordHash(user.ID, newHash); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("password changed", "user", user.Email)
	respond(w, http.StatusOK, map[string]any{"message": "Password changed"})
}

// TOTPSetup generates a fresh TOTP secret for the authenticated user and
// returns it with a QR code for authenticator apps. The secret is stored
// immediately but 2FA stays off until TOTPVerify proves possession.
func (a *Auth) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		slog.Error("totp setup lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	if err := a.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		respondStoreError(w, err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("totp qr encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"secret":     key.Secret(),
		"otpauthUrl": key.URL(),
		"qrCode":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

type totpCodeRequest struct {
	Code string `json:"code"`
}

// TOTPVerify turns 2FA on after the user proves they hold the secret by
// submitting a valid code.
func (a *Auth) TOTPVerify(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req totpCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		slog.Error("totp verify lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Two-factor setup has not been started")
		return
	}

	if !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid authentication code")
		return
	}

	if err := a.users.EnableTOTP(user.ID); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("totp enabled", "user", user.Email)
	respond(w, http.StatusOK, map[string]any{"message": "Two-factor authentication enabled"})
}

// TOTPDisable turns 2FA off. A valid current code is required so a hijacked
// session cannot weaken the account without holding the second factor.
func (a *Auth) TOTPDisable(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req totpCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		slog.Error("totp disable lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		return
	}
	if !user.TOTPEnabled {
		respond(w, http.StatusOK, map[string]any{"message": "Two-factor authentication is not enabled"})
		return
	}

	if user.TOTPSecret == nil || !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid authentication code")
		return
	}

	if err := a.users.DisableTOTP(user.ID); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("totp disabled", "user", user.Email)
	respond(w, http.StatusOK, map[string]any{"message": "Two-factor authentication disabled"})
}
