package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kzone-booking-backend/internal/models"
)

// ProfileRepository is the document store seam: per-user profile records in
// the "users" collection, keyed by the identity provider's uid. Creation and
// update timestamps are server-assigned.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a profile record for a user
func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO users (uid, email, display_name, phone, address, photo_url, push_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		profile.UID, profile.Email, profile.DisplayName,
		profile.Phone, profile.Address, profile.PhotoURL, profile.PushToken,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by uid, nil if absent
func (r *ProfileRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := `
		SELECT uid, email, display_name, phone, address, photo_url, push_token, created_at, updated_at
		FROM users
		WHERE uid = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&profile.UID, &profile.Email, &profile.DisplayName,
		&profile.Phone, &profile.Address, &profile.PhotoURL, &profile.PushToken,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update applies a partial update to a profile. Nil fields are left
// unchanged; updated_at is always bumped server-side.
func (r *ProfileRepository) Update(ctx context.Context, uid string, update models.ProfileUpdate) error {
	query := `
		UPDATE users
		SET display_name = COALESCE($1, display_name),
		    phone = COALESCE($2, phone),
		    address = COALESCE($3, address),
		    photo_url = COALESCE($4, photo_url),
		    updated_at = now()
		WHERE uid = $5
	`
	_, err := r.db.Exec(ctx, query,
		update.DisplayName, update.Phone, update.Address, update.PhotoURL, uid,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdatePushToken updates the push token for a user
func (r *ProfileRepository) UpdatePushToken(ctx context.Context, uid string, pushToken *string) error {
	query := `UPDATE users SET push_token = $1, updated_at = now() WHERE uid = $2`
	_, err := r.db.Exec(ctx, query, pushToken, uid)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}

// Delete removes a profile record
func (r *ProfileRepository) Delete(ctx context.Context, uid string) error {
	query := `DELETE FROM users WHERE uid = $1`
	_, err := r.db.Exec(ctx, query, uid)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
