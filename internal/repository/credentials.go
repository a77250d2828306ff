package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Credential is an identity-provider account record. It is separate from the
// profile document: the provider owns email and identity, the document store
// owns the extended profile fields.
type Credential struct {
	UID          string
	Email        string
	PasswordHash string
	DisplayName  string
	PhotoURL     string
	Disabled     bool
}

// CredentialRepository handles database operations for identity accounts
type CredentialRepository struct {
	db *pgxpool.Pool
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create creates a new identity account
func (r *CredentialRepository) Create(ctx context.Context, cred *Credential) error {
	query := `
		INSERT INTO auth_users (uid, email, password_hash, display_name, photo_url, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`
	_, err := r.db.Exec(ctx, query,
		cred.UID, cred.Email, cred.PasswordHash, cred.DisplayName, cred.PhotoURL, cred.Disabled,
	)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by email, nil if absent
func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	query := `
		SELECT uid, email, password_hash, display_name, photo_url, disabled
		FROM auth_users
		WHERE email = $1
	`
	var cred Credential
	err := r.db.QueryRow(ctx, query, email).Scan(
		&cred.UID, &cred.Email, &cred.PasswordHash, &cred.DisplayName, &cred.PhotoURL, &cred.Disabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential by email: %w", err)
	}
	return &cred, nil
}

// GetByUID retrieves an account by uid, nil if absent
func (r *CredentialRepository) GetByUID(ctx context.Context, uid string) (*Credential, error) {
	query := `
		SELECT uid, email, password_hash, display_name, photo_url, disabled
		FROM auth_users
		WHERE uid = $1
	`
	var cred Credential
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&cred.UID, &cred.Email, &cred.PasswordHash, &cred.DisplayName, &cred.PhotoURL, &cred.Disabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

// EmailExists checks if an email is already registered
func (r *CredentialRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM auth_users WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateIdentity updates the provider-owned display name and photo URL.
// Nil fields are left unchanged.
func (r *CredentialRepository) UpdateIdentity(ctx context.Context, uid string, displayName, photoURL *string) error {
	query := `
		UPDATE auth_users
		SET display_name = COALESCE($1, display_name),
		    photo_url = COALESCE($2, photo_url)
		WHERE uid = $3
	`
	_, err := r.db.Exec(ctx, query, displayName, photoURL, uid)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	return nil
}

// Delete removes an identity account
func (r *CredentialRepository) Delete(ctx context.Context, uid string) error {
	query := `DELETE FROM auth_users WHERE uid = $1`
	_, err := r.db.Exec(ctx, query, uid)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
