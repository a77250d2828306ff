package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/catalog"
	"kzone-booking-backend/internal/middleware"
)

// CatalogHandler serves the experience catalog and review submission
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListExperiences handles GET /api/v1/experiences
func (h *CatalogHandler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.catalog.List(), http.StatusOK)
}

// GetExperience handles GET /api/v1/experiences/{id}
func (h *CatalogHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid experience id", http.StatusBadRequest)
		return
	}

	exp, err := h.catalog.Get(id)
	if err != nil {
		respondError(w, "Experience not found", http.StatusNotFound)
		return
	}
	respondJSON(w, exp, http.StatusOK)
}

// ReviewRequest is the review submission payload
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview handles POST /api/v1/experiences/{id}/reviews
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	snap := sess.Snapshot()
	if !snap.Authenticated {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid experience id", http.StatusBadRequest)
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Comment == "" {
		respondError(w, "Comment is required", http.StatusBadRequest)
		return
	}

	user := snap.User.DisplayName
	if user == "" {
		user = "Anonymous User"
	}

	review, err := h.catalog.AddReview(id, user, snap.User.PhotoURL, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, "Experience not found", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info().
		Int("experience_id", id).
		Str("uid", snap.User.UID).
		Int("rating", req.Rating).
		Msg("Review added")
	respondJSON(w, review, http.StatusCreated)
}
