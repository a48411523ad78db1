package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
	"staffpanel/internal/middleware"
	"staffpanel/internal/session"
)

// CredentialStore validates admin credentials. Unknown user and wrong
// password must be indistinguishable to the caller.
type CredentialStore interface {
	Authenticate(ctx context.Context, username, password string) (entity.SessionUser, error)
}

type AuthHandler struct {
	users    CredentialStore
	sessions *session.Manager
	rsp      *Responder
	logger   *zap.Logger
}

func NewAuthHandler(users CredentialStore, sessions *session.Manager, rsp *Responder, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		rsp:      rsp,
		logger:   logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user, ok := h.sessions.CurrentUser(r); ok {
		if middleware.IsDataClient(r) {
			h.rsp.JSON(w, http.StatusOK, map[string]any{
				"message": "Already logged in",
				"user":    user,
			})
			return
		}
		http.Redirect(w, r, "/departments", http.StatusSeeOther)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "auth/login", map[string]any{
		"Title":       "Login - Admin Panel",
		"Error":       flash.Error,
		"IsLoginPage": true,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := loginCredentials(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if username == "" || password == "" {
		h.fail(w, r, apperror.Validation("Username and password are required."))
		return
	}

	user, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeUnauthorized {
			h.fail(w, r, err)
			return
		}
		h.rsp.Error(w, r, err)
		return
	}

	if err := h.sessions.SignIn(w, r, user); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	h.logger.Info("login", zap.String("username", user.Username))

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"user":    user,
		})
		return
	}
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// A destroy failure is logged but never blocks the redirect.
	if err := h.sessions.SignOut(w, r); err != nil {
		h.logger.Error("session destroy", zap.Error(err))
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{"message": "Logout successful"})
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// fail reports a login failure without revealing which field was wrong.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if middleware.IsDataClient(r) {
		h.rsp.Error(w, r, err)
		return
	}
	h.sessions.SetError(w, r, err.Error())
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func loginCredentials(r *http.Request) (string, string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", apperror.New(apperror.CodeValidation, "Malformed request body")
		}
		return strings.TrimSpace(body.Username), body.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", apperror.New(apperror.CodeValidation, "Malformed request body")
	}
	return strings.TrimSpace(r.FormValue("username")), r.FormValue("password"), nil
}
