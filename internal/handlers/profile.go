package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/middleware"
	"kzone-booking-backend/internal/models"
	"kzone-booking-backend/internal/services"
	"kzone-booking-backend/internal/session"
)

// ProfileHandler handles profile reads, edits and avatar uploads
type ProfileHandler struct {
	manager *session.Manager
	avatars *services.AvatarService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(manager *session.Manager, avatars *services.AvatarService) *ProfileHandler {
	return &ProfileHandler{manager: manager, avatars: avatars}
}

// ProfileResponse wraps a profile plus any non-fatal secondary failures
type ProfileResponse struct {
	Profile  *models.UserProfile   `json:"profile"`
	Degraded []session.StepFailure `json:"degraded,omitempty"`
}

// GetProfile handles GET /api/v1/auth/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	snap := sess.Snapshot()
	if !snap.Authenticated {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}
	respondJSON(w, ProfileResponse{Profile: snap.User}, http.StatusOK)
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	degraded, err := h.manager.UpdateProfile(r.Context(), sess, update)
	if err != nil {
		respondAuthError(w, err, func(ae *session.AuthError) int {
			if ae.Local() {
				return http.StatusUnauthorized
			}
			return http.StatusInternalServerError
		})
		return
	}

	snap := sess.Snapshot()
	log.Info().Str("uid", snap.User.UID).Msg("Profile updated")
	respondJSON(w, ProfileResponse{Profile: snap.User, Degraded: degraded}, http.StatusOK)
}

// PushTokenRequest is the payload for registering a device push token
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// SetPushToken handles PUT /api/v1/auth/push-token
func (h *ProfileHandler) SetPushToken(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.manager.SetPushToken(r.Context(), sess, req.PushToken); err != nil {
		log.Error().Err(err).Msg("Failed to set push token")
		respondError(w, "Failed to set push token", http.StatusInternalServerError)
		return
	}
	respondJSON(w, sess.Snapshot().User, http.StatusOK)
}

// AvatarUploadRequest is the payload for requesting an avatar upload URL
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// UploadAvatar handles POST /api/v1/auth/profile/photo
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	snap := sess.Snapshot()
	if !snap.Authenticated {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.avatars.GetUploadURL(r.Context(), snap.User.UID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate avatar upload URL")
		respondError(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}
	respondJSON(w, resp, http.StatusOK)
}
