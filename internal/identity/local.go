package identity

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kzone-booking-backend/internal/repository"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether an address has the accepted shape
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CredentialStore is the account storage the local provider runs on
type CredentialStore interface {
	Create(ctx context.Context, cred *repository.Credential) error
	GetByEmail(ctx context.Context, email string) (*repository.Credential, error)
	GetByUID(ctx context.Context, uid string) (*repository.Credential, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateIdentity(ctx context.Context, uid string, displayName, photoURL *string) error
	Delete(ctx context.Context, uid string) error
}

// TokenStore tracks live session tokens
type TokenStore interface {
	Put(ctx context.Context, jti, uid string, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

// LocalProvider implements Provider on the service's own credential table,
// with bcrypt password hashing, HS256 session tokens and a redis-backed
// token allow-list so sign-out takes effect immediately.
type LocalProvider struct {
	creds     CredentialStore
	tokens    TokenStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewLocalProvider creates a local identity provider
func NewLocalProvider(creds CredentialStore, tokens TokenStore, jwtSecret string, tokenTTL time.Duration) *LocalProvider {
	return &LocalProvider{
		creds:     creds,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// CreateAccount registers a new account
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password, displayName string) (*User, string, error) {
	if !ValidEmail(email) {
		return nil, "", &Error{Code: CodeInvalidEmail}
	}
	if len(password) < minPasswordLength {
		return nil, "", &Error{Code: CodeWeakPassword}
	}

	exists, err := p.creds.EmailExists(ctx, email)
	if err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}
	if exists {
		return nil, "", &Error{Code: CodeEmailInUse}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}

	cred := &repository.Credential{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := p.creds.Create(ctx, cred); err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}

	user := credToUser(cred)
	token, err := p.issueToken(ctx, user)
	if err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}
	return user, token, nil
}

// Authenticate checks credentials and opens a session
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}
	if cred == nil {
		return nil, "", &Error{Code: CodeUserNotFound}
	}
	if cred.Disabled {
		return nil, "", &Error{Code: CodeUserDisabled}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, "", &Error{Code: CodeWrongPassword}
	}

	user := credToUser(cred)
	token, err := p.issueToken(ctx, user)
	if err != nil {
		return nil, "", &Error{Code: CodeInternal, Err: err}
	}
	return user, token, nil
}

// SignOut revokes a session token
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	jti, _, err := p.parseToken(token)
	if err != nil {
		return err
	}
	if err := p.tokens.Revoke(ctx, jti); err != nil {
		return &Error{Code: CodeInternal, Err: err}
	}
	return nil
}

// DeleteAccount removes the account behind a live session token
func (p *LocalProvider) DeleteAccount(ctx context.Context, token string) error {
	jti, uid, err := p.parseToken(token)
	if err != nil {
		return err
	}
	live, err := p.tokens.Exists(ctx, jti)
	if err != nil {
		return &Error{Code: CodeInternal, Err: err}
	}
	if !live {
		return &Error{Code: CodeInvalidToken}
	}
	if err := p.creds.Delete(ctx, uid); err != nil {
		return &Error{Code: CodeInternal, Err: err}
	}
	if err := p.tokens.Revoke(ctx, jti); err != nil {
		return &Error{Code: CodeInternal, Err: err}
	}
	return nil
}

// Verify resolves a live session token to its user
func (p *LocalProvider) Verify(ctx context.Context, token string) (*User, error) {
	jti, uid, err := p.parseToken(token)
	if err != nil {
		return nil, err
	}

	live, err := p.tokens.Exists(ctx, jti)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Err: err}
	}
	if !live {
		return nil, &Error{Code: CodeInvalidToken}
	}

	cred, err := p.creds.GetByUID(ctx, uid)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Err: err}
	}
	if cred == nil {
		return nil, &Error{Code: CodeUserNotFound}
	}
	if cred.Disabled {
		return nil, &Error{Code: CodeUserDisabled}
	}
	return credToUser(cred), nil
}

// UpdateIdentity updates the provider-owned profile fields
func (p *LocalProvider) UpdateIdentity(ctx context.Context, uid string, update IdentityUpdate) (*User, error) {
	if err := p.creds.UpdateIdentity(ctx, uid, update.DisplayName, update.PhotoURL); err != nil {
		return nil, &Error{Code: CodeInternal, Err: err}
	}
	cred, err := p.creds.GetByUID(ctx, uid)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Err: err}
	}
	if cred == nil {
		return nil, &Error{Code: CodeUserNotFound}
	}
	return credToUser(cred), nil
}

func (p *LocalProvider) issueToken(ctx context.Context, user *User) (string, error) {
	jti := uuid.New().String()
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UID,
		"email":   user.Email,
		"jti":     jti,
		"exp":     now.Add(p.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := p.tokens.Put(ctx, jti, user.UID, p.tokenTTL); err != nil {
		return "", err
	}
	return signed, nil
}

func (p *LocalProvider) parseToken(tokenString string) (jti, uid string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", &Error{Code: CodeInvalidToken, Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", &Error{Code: CodeInvalidToken}
	}
	jti, _ = claims["jti"].(string)
	uid, _ = claims["user_id"].(string)
	if jti == "" || uid == "" {
		return "", "", &Error{Code: CodeInvalidToken}
	}
	return jti, uid, nil
}

func credToUser(cred *repository.Credential) *User {
	return &User{
		UID:         cred.UID,
		Email:       cred.Email,
		DisplayName: cred.DisplayName,
		PhotoURL:    cred.PhotoURL,
	}
}
