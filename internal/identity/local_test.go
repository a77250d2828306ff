package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kzone-booking-backend/internal/repository"
)

type memCredStore struct {
	byUID map[string]*repository.Credential
}

func newMemCredStore() *memCredStore {
	return &memCredStore{byUID: make(map[string]*repository.Credential)}
}

func (s *memCredStore) Create(_ context.Context, cred *repository.Credential) error {
	cp := *cred
	s.byUID[cred.UID] = &cp
	return nil
}

func (s *memCredStore) GetByEmail(_ context.Context, email string) (*repository.Credential, error) {
	for _, c := range s.byUID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memCredStore) GetByUID(_ context.Context, uid string) (*repository.Credential, error) {
	c, ok := s.byUID[uid]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memCredStore) EmailExists(ctx context.Context, email string) (bool, error) {
	c, err := s.GetByEmail(ctx, email)
	return c != nil, err
}

func (s *memCredStore) UpdateIdentity(_ context.Context, uid string, displayName, photoURL *string) error {
	c := s.byUID[uid]
	if displayName != nil {
		c.DisplayName = *displayName
	}
	if photoURL != nil {
		c.PhotoURL = *photoURL
	}
	return nil
}

func (s *memCredStore) Delete(_ context.Context, uid string) error {
	delete(s.byUID, uid)
	return nil
}

type memTokenStore struct {
	live map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{live: make(map[string]string)}
}

func (s *memTokenStore) Put(_ context.Context, jti, uid string, _ time.Duration) error {
	s.live[jti] = uid
	return nil
}

func (s *memTokenStore) Exists(_ context.Context, jti string) (bool, error) {
	_, ok := s.live[jti]
	return ok, nil
}

func (s *memTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.live, jti)
	return nil
}

func newTestProvider() *LocalProvider {
	return NewLocalProvider(newMemCredStore(), newMemTokenStore(), "test-secret", time.Hour)
}

func TestCreateAccountAndVerify(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	user, token, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "Kim")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.UID)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.Equal(t, "Kim", user.DisplayName)
	assert.NotEmpty(t, token)

	got, err := p.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.UID, got.UID)
}

func TestCreateAccountValidation(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	_, _, err := p.CreateAccount(ctx, "not-an-email", "secret1", "")
	assert.Equal(t, CodeInvalidEmail, CodeOf(err))

	_, _, err = p.CreateAccount(ctx, "kim@example.com", "short", "")
	assert.Equal(t, CodeWeakPassword, CodeOf(err))

	_, _, err = p.CreateAccount(ctx, "kim@example.com", "secret1", "")
	require.NoError(t, err)
	_, _, err = p.CreateAccount(ctx, "kim@example.com", "secret2", "")
	assert.Equal(t, CodeEmailInUse, CodeOf(err))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	_, _, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "Kim")
	require.NoError(t, err)

	user, token, err := p.Authenticate(ctx, "kim@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = p.Authenticate(ctx, "kim@example.com", "wrong-password")
	assert.Equal(t, CodeWrongPassword, CodeOf(err))

	_, _, err = p.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, CodeUserNotFound, CodeOf(err))
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	ctx := context.Background()
	creds := newMemCredStore()
	p := NewLocalProvider(creds, newMemTokenStore(), "test-secret", time.Hour)

	user, token, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "")
	require.NoError(t, err)
	creds.byUID[user.UID].Disabled = true

	_, _, err = p.Authenticate(ctx, "kim@example.com", "secret1")
	assert.Equal(t, CodeUserDisabled, CodeOf(err))

	_, err = p.Verify(ctx, token)
	assert.Equal(t, CodeUserDisabled, CodeOf(err))
}

func TestSignOutRevokesToken(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	_, token, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx, token))

	_, err = p.Verify(ctx, token)
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	_, token, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "")
	require.NoError(t, err)

	require.NoError(t, p.DeleteAccount(ctx, token))

	_, err = p.Verify(ctx, token)
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
	_, _, err = p.Authenticate(ctx, "kim@example.com", "secret1")
	assert.Equal(t, CodeUserNotFound, CodeOf(err))

	// revoked token cannot delete again
	err = p.DeleteAccount(ctx, token)
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	_, err := p.Verify(ctx, "not-a-token")
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	other := NewLocalProvider(newMemCredStore(), newMemTokenStore(), "other-secret", time.Hour)

	_, token, err := other.CreateAccount(ctx, "kim@example.com", "secret1", "")
	require.NoError(t, err)

	p := newTestProvider()
	_, err = p.Verify(ctx, token)
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
}

func TestUpdateIdentity(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	user, _, err := p.CreateAccount(ctx, "kim@example.com", "secret1", "Kim")
	require.NoError(t, err)

	name := "Kim Min-ji"
	photo := "https://cdn.example.com/kim.jpg"
	got, err := p.UpdateIdentity(ctx, user.UID, IdentityUpdate{DisplayName: &name, PhotoURL: &photo})
	require.NoError(t, err)
	assert.Equal(t, "Kim Min-ji", got.DisplayName)
	assert.Equal(t, photo, got.PhotoURL)

	// nil fields stay untouched
	got, err = p.UpdateIdentity(ctx, user.UID, IdentityUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Kim Min-ji", got.DisplayName)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("user.name+tag@example.org"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("no-at-sign"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.d"))
	assert.False(t, ValidEmail("a@b c.d"))
}
