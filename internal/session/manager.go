package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/identity"
	"kzone-booking-backend/internal/models"
	"kzone-booking-backend/internal/profileapi"
)

const minPasswordLength = 6

// ProfileStore is the document store seam the manager writes profiles to
type ProfileStore interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
	Update(ctx context.Context, uid string, update models.ProfileUpdate) error
	UpdatePushToken(ctx context.Context, uid string, pushToken *string) error
	Delete(ctx context.Context, uid string) error
}

// Backend is the optional profile backend seam. Every failure behind it is
// degraded, never critical.
type Backend interface {
	Available() bool
	GetProfile(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error
	CreateUser(ctx context.Context, user profileapi.BackendUser) error
	DeleteUser(ctx context.Context, token, uid string) error
}

// StepFailure records a non-fatal failure of a secondary collaborator during
// an auth operation. The primary action has already succeeded when one of
// these is reported.
type StepFailure struct {
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

// Manager orchestrates the auth operations across the identity provider, the
// document store and the optional backend, and owns the live sessions.
type Manager struct {
	provider identity.Provider
	profiles ProfileStore
	backend  Backend

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager
func NewManager(provider identity.Provider, profiles ProfileStore, backend Backend) *Manager {
	return &Manager{
		provider: provider,
		profiles: profiles,
		backend:  backend,
		sessions: make(map[string]*Session),
	}
}

// SignUp registers a new account. Local validation runs before any provider
// or store call; only an identity-provider failure fails the operation.
// Secondary failures come back as StepFailures.
func (m *Manager) SignUp(ctx context.Context, email, password, passwordConfirm, displayName string) (*Session, []StepFailure, error) {
	email = strings.TrimSpace(email)

	if !identity.ValidEmail(email) {
		return nil, nil, localError("Please enter a valid email address")
	}
	if passwordConfirm != "" && password != passwordConfirm {
		return nil, nil, localError("Passwords do not match")
	}
	if len(password) < minPasswordLength {
		return nil, nil, localError("Password should be at least 6 characters")
	}

	sess := newSession()

	user, token, err := m.provider.CreateAccount(ctx, email, password, displayName)
	if err != nil {
		code := identity.CodeOf(err)
		msg := signUpMessage(code)
		sess.setError(msg)
		return nil, nil, &AuthError{Message: msg, Code: code}
	}

	var degraded []StepFailure

	profile := &models.UserProfile{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	var store *models.UserProfile
	if err := m.profiles.Create(ctx, profile); err != nil {
		log.Warn().Err(err).Str("uid", user.UID).Msg("Failed to create profile record, continuing")
		degraded = append(degraded, StepFailure{Step: "document-store", Reason: err.Error()})
	} else {
		store = profile
	}

	if m.backend.Available() {
		mirror := profileapi.BackendUser{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}
		if err := m.backend.CreateUser(ctx, mirror); err != nil {
			log.Warn().Err(err).Str("uid", user.UID).Msg("Failed to mirror user to backend, continuing")
			degraded = append(degraded, StepFailure{Step: "backend", Reason: err.Error()})
		}
	}

	sess.setAuthenticated(reconcile(user, store, nil), token)
	m.register(sess)
	return sess, degraded, nil
}

// SignIn authenticates a user, then fetches or lazily creates the profile
// record before the session is marked authenticated. The backend fetch is
// opportunistic.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, []StepFailure, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, localError("Please fill in all fields")
	}
	if !identity.ValidEmail(email) {
		return nil, nil, localError("Please enter a valid email address")
	}

	sess := newSession()

	user, token, err := m.provider.Authenticate(ctx, email, password)
	if err != nil {
		code := identity.CodeOf(err)
		msg := signInMessage(code)
		sess.setError(msg)
		return nil, nil, &AuthError{Message: msg, Code: code}
	}

	store, degraded := m.fetchOrCreateProfile(ctx, user)
	backendProfile := m.fetchBackendProfile(ctx, token, &degraded)

	sess.setAuthenticated(reconcile(user, store, backendProfile), token)
	m.register(sess)
	return sess, degraded, nil
}

// SignOut signs out with the provider and, on success, clears the session
// unconditionally
func (m *Manager) SignOut(ctx context.Context, token string) error {
	if err := m.provider.SignOut(ctx, token); err != nil {
		return err
	}

	m.mu.Lock()
	sess := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if sess != nil {
		sess.clear()
	}
	return nil
}

// DeleteAccount removes the account end to end: the provider credential
// first, then best-effort removal of the profile record and the backend
// mirror. The session is cleared afterwards.
func (m *Manager) DeleteAccount(ctx context.Context, sess *Session) ([]StepFailure, error) {
	snap := sess.Snapshot()
	if !snap.Authenticated {
		return nil, localError("No active session")
	}
	uid := snap.User.UID
	token := sess.Token()

	var degraded []StepFailure

	if m.backend.Available() {
		if err := m.backend.DeleteUser(ctx, token, uid); err != nil {
			log.Warn().Err(err).Str("uid", uid).Msg("Failed to remove backend mirror, continuing")
			degraded = append(degraded, StepFailure{Step: "backend", Reason: err.Error()})
		}
	}

	if err := m.provider.DeleteAccount(ctx, token); err != nil {
		return nil, &AuthError{Message: "Failed to delete account", Code: identity.CodeOf(err)}
	}

	if err := m.profiles.Delete(ctx, uid); err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("Failed to delete profile record, continuing")
		degraded = append(degraded, StepFailure{Step: "document-store", Reason: err.Error()})
	}

	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	sess.clear()
	return degraded, nil
}

// Resolve maps a bearer token to its live session, restoring one from the
// provider if the process no longer holds it
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	sess := m.sessions[token]
	m.mu.RUnlock()
	if sess != nil {
		return sess, nil
	}

	user, err := m.provider.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	store, degraded := m.fetchOrCreateProfile(ctx, user)
	backendProfile := m.fetchBackendProfile(ctx, token, &degraded)

	sess = newSession()
	sess.setAuthenticated(reconcile(user, store, backendProfile), token)
	m.register(sess)
	return sess, nil
}

// UpdateProfile updates the provider identity first, then best-effort
// mirrors to the document store and backend. The local snapshot merges only
// the subset of updates that succeeded.
func (m *Manager) UpdateProfile(ctx context.Context, sess *Session, update models.ProfileUpdate) ([]StepFailure, error) {
	snap := sess.Snapshot()
	if !snap.Authenticated {
		return nil, localError("No active session")
	}
	uid := snap.User.UID

	user, err := m.provider.UpdateIdentity(ctx, uid, identity.IdentityUpdate{
		DisplayName: update.DisplayName,
		PhotoURL:    update.PhotoURL,
	})
	if err != nil {
		return nil, &AuthError{Message: "Failed to update profile", Code: identity.CodeOf(err)}
	}

	var degraded []StepFailure

	storeOK := true
	if err := m.profiles.Update(ctx, uid, update); err != nil {
		storeOK = false
		log.Warn().Err(err).Str("uid", uid).Msg("Failed to update profile record, continuing")
		degraded = append(degraded, StepFailure{Step: "document-store", Reason: err.Error()})
	}

	if m.backend.Available() {
		if err := m.backend.UpdateProfile(ctx, sess.Token(), update); err != nil {
			log.Warn().Err(err).Str("uid", uid).Msg("Failed to mirror profile update to backend, continuing")
			degraded = append(degraded, StepFailure{Step: "backend", Reason: err.Error()})
		}
	}

	merged := *snap.User
	merged.DisplayName = user.DisplayName
	merged.PhotoURL = user.PhotoURL
	if storeOK {
		if update.Phone != nil {
			merged.Phone = *update.Phone
		}
		if update.Address != nil {
			merged.Address = *update.Address
		}
	}
	sess.setUser(&merged)
	return degraded, nil
}

// SetPushToken registers a device push token on the profile record
func (m *Manager) SetPushToken(ctx context.Context, sess *Session, pushToken *string) error {
	snap := sess.Snapshot()
	if !snap.Authenticated {
		return localError("No active session")
	}
	if err := m.profiles.UpdatePushToken(ctx, snap.User.UID, pushToken); err != nil {
		return err
	}

	merged := *snap.User
	merged.PushToken = pushToken
	sess.setUser(&merged)
	return nil
}

func (m *Manager) register(sess *Session) {
	m.mu.Lock()
	m.sessions[sess.Token()] = sess
	m.mu.Unlock()
}

func (m *Manager) fetchOrCreateProfile(ctx context.Context, user *identity.User) (*models.UserProfile, []StepFailure) {
	var degraded []StepFailure

	store, err := m.profiles.GetByID(ctx, user.UID)
	if err != nil {
		log.Warn().Err(err).Str("uid", user.UID).Msg("Failed to fetch profile record, continuing")
		return nil, append(degraded, StepFailure{Step: "document-store", Reason: err.Error()})
	}
	if store != nil {
		return store, degraded
	}

	profile := &models.UserProfile{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	if err := m.profiles.Create(ctx, profile); err != nil {
		log.Warn().Err(err).Str("uid", user.UID).Msg("Failed to create profile record, continuing")
		return nil, append(degraded, StepFailure{Step: "document-store", Reason: err.Error()})
	}
	return profile, degraded
}

func (m *Manager) fetchBackendProfile(ctx context.Context, token string, degraded *[]StepFailure) *models.UserProfile {
	if !m.backend.Available() {
		return nil
	}
	profile, err := m.backend.GetProfile(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("Backend profile fetch failed, continuing")
		*degraded = append(*degraded, StepFailure{Step: "backend", Reason: err.Error()})
		return nil
	}
	return profile
}

// reconcile merges the three profile sources with a fixed precedence:
// provider identity fields win, then the document store fills gaps, then the
// backend fills whatever is still empty.
func reconcile(user *identity.User, store, backend *models.UserProfile) *models.UserProfile {
	merged := models.UserProfile{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	for _, src := range []*models.UserProfile{store, backend} {
		if src == nil {
			continue
		}
		if merged.DisplayName == "" {
			merged.DisplayName = src.DisplayName
		}
		if merged.PhotoURL == "" {
			merged.PhotoURL = src.PhotoURL
		}
		if merged.Phone == "" {
			merged.Phone = src.Phone
		}
		if merged.Address == "" {
			merged.Address = src.Address
		}
		if merged.PushToken == nil {
			merged.PushToken = src.PushToken
		}
		if merged.CreatedAt.IsZero() {
			merged.CreatedAt = src.CreatedAt
		}
		if merged.UpdatedAt.IsZero() {
			merged.UpdatedAt = src.UpdatedAt
		}
	}
	return &merged
}
