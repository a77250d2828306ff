// Package identity defines the identity-provider seam: the external
// collaborator that authenticates users by email and password and issues
// session tokens. Callers branch on provider error codes, never on the
// implementation's internal errors.
package identity

import "context"

// Code classifies provider failures the way callers surface them to users
type Code string

const (
	CodeEmailInUse    Code = "email-already-in-use"
	CodeInvalidEmail  Code = "invalid-email"
	CodeWeakPassword  Code = "weak-password"
	CodeUserNotFound  Code = "user-not-found"
	CodeWrongPassword Code = "wrong-password"
	CodeUserDisabled  Code = "user-disabled"
	CodeInvalidToken  Code = "invalid-token"
	CodeInternal      Code = "internal"
)

// Error is a provider failure with a stable code
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the provider code from an error, CodeInternal if none
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if pe, ok := err.(*Error); ok {
		return pe.Code
	}
	return CodeInternal
}

// User is the provider's view of an account: stable identifier plus the
// identity fields the provider is authoritative for
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// IdentityUpdate carries the provider-owned fields updateProfile may change
type IdentityUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// Provider is the external identity collaborator
type Provider interface {
	// CreateAccount registers a new account and returns the user plus a
	// session token. Fails with CodeEmailInUse, CodeInvalidEmail or
	// CodeWeakPassword.
	CreateAccount(ctx context.Context, email, password, displayName string) (*User, string, error)
	// Authenticate checks credentials and returns the user plus a session
	// token. Fails with CodeUserNotFound, CodeWrongPassword or
	// CodeUserDisabled.
	Authenticate(ctx context.Context, email, password string) (*User, string, error)
	// SignOut invalidates a session token
	SignOut(ctx context.Context, token string) error
	// DeleteAccount removes the account behind a live session token and
	// invalidates the token
	DeleteAccount(ctx context.Context, token string) error
	// Verify resolves a live session token to its user
	Verify(ctx context.Context, token string) (*User, error)
	// UpdateIdentity updates the provider-owned profile fields
	UpdateIdentity(ctx context.Context, uid string, update IdentityUpdate) (*User, error)
}
