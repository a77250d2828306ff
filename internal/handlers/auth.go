package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/identity"
	"kzone-booking-backend/internal/middleware"
	"kzone-booking-backend/internal/session"
)

// AuthHandler handles sign-up, sign-in, sign-out and session inspection
type AuthHandler struct {
	manager *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(manager *session.Manager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

// SignUpRequest is the sign-up form payload
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm,omitempty"`
	DisplayName     string `json:"display_name"`
}

// SignInRequest is the sign-in form payload
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token and snapshot, plus any non-fatal
// secondary failures that occurred along the way
type AuthResponse struct {
	Token    string                `json:"token"`
	Session  session.Snapshot      `json:"session"`
	Degraded []session.StepFailure `json:"degraded,omitempty"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, degraded, err := h.manager.SignUp(r.Context(), req.Email, req.Password, req.PasswordConfirm, req.DisplayName)
	if err != nil {
		respondAuthError(w, err, signUpStatus)
		return
	}

	snap := sess.Snapshot()
	log.Info().Str("uid", snap.User.UID).Msg("User signed up")
	respondJSON(w, AuthResponse{Token: sess.Token(), Session: snap, Degraded: degraded}, http.StatusCreated)
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, degraded, err := h.manager.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, err, signInStatus)
		return
	}

	snap := sess.Snapshot()
	log.Info().Str("uid", snap.User.UID).Msg("User signed in")
	respondJSON(w, AuthResponse{Token: sess.Token(), Session: snap, Degraded: degraded}, http.StatusOK)
}

// SignOut handles POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	if err := h.manager.SignOut(r.Context(), sess.Token()); err != nil {
		log.Error().Err(err).Msg("Failed to sign out")
		respondError(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}

	respondJSON(w, sess.Snapshot(), http.StatusOK)
}

// DeleteAccount handles DELETE /api/v1/auth/account
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	degraded, err := h.manager.DeleteAccount(r.Context(), sess)
	if err != nil {
		respondAuthError(w, err, func(ae *session.AuthError) int {
			if ae.Local() {
				return http.StatusUnauthorized
			}
			return http.StatusInternalServerError
		})
		return
	}

	log.Info().Msg("Account deleted")
	respondJSON(w, AuthResponse{Session: sess.Snapshot(), Degraded: degraded}, http.StatusOK)
}

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}
	respondJSON(w, sess.Snapshot(), http.StatusOK)
}

func respondAuthError(w http.ResponseWriter, err error, status func(*session.AuthError) int) {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		respondError(w, authErr.Message, status(authErr))
		return
	}
	log.Error().Err(err).Msg("Auth operation failed")
	respondError(w, "Internal server error", http.StatusInternalServerError)
}

func signUpStatus(err *session.AuthError) int {
	switch {
	case err.Local():
		return http.StatusBadRequest
	case err.Code == identity.CodeEmailInUse:
		return http.StatusConflict
	case err.Code == identity.CodeInvalidEmail, err.Code == identity.CodeWeakPassword:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func signInStatus(err *session.AuthError) int {
	switch {
	case err.Local():
		return http.StatusBadRequest
	case err.Code == identity.CodeUserNotFound,
		err.Code == identity.CodeWrongPassword,
		err.Code == identity.CodeUserDisabled:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
