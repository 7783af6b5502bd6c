package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"shopwright/internal/middleware"
	"shopwright/internal/session"
	"shopwright/internal/store"
)

// Auth groups all authentication-related JSON handlers for the builder
// admin API. Staff accounts must complete TOTP enrollment before the
// template endpoints accept them.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

// Login verifies credentials and opens a session. TwoFADone starts as
// false — the client must complete 2FA before the admin API opens up.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "login failed")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		errorJSON(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !user.IsStaff() {
		errorJSON(w, http.StatusForbidden, "account may not use the builder")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "login failed")
		return
	}

	next := "verify"
	if user.Needs2FASetup() {
		next = "setup"
	}
	respondJSON(w, http.StatusOK, map[string]string{"two_fa": next})
}

// TwoFASetup generates a TOTP secret for the logged-in user and returns
// it with a QR code (base64 PNG) for authenticator enrollment.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Shopwright",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "2fa setup failed")
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "2fa setup failed")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "2fa setup failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret":  key.Secret(),
		"qr_code": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates the TOTP code and completes authentication.
// First-time verification also enables TOTP on the account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "2fa verify failed")
		return
	}

	if user.TOTPSecret == nil {
		errorJSON(w, http.StatusConflict, "2fa is not set up yet")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		errorJSON(w, http.StatusUnauthorized, "invalid code")
		return
	}

	// First successful verification completes enrollment.
	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, "2fa verify failed")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "2fa verify failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
