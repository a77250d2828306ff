package session

import "kzone-booking-backend/internal/identity"

// AuthError is a user-facing auth failure. An empty Code means the request
// was rejected by local validation before any provider or network call.
type AuthError struct {
	Message string
	Code    identity.Code
}

func (e *AuthError) Error() string {
	return e.Message
}

// Local reports whether the error came from local validation
func (e *AuthError) Local() bool {
	return e.Code == ""
}

func localError(msg string) *AuthError {
	return &AuthError{Message: msg}
}

// signUpMessage maps provider error codes to the sign-up banner text
func signUpMessage(code identity.Code) string {
	switch code {
	case identity.CodeEmailInUse:
		return "This email is already registered. Please try logging in instead."
	case identity.CodeInvalidEmail:
		return "The email address is invalid. Please check and try again."
	case identity.CodeWeakPassword:
		return "The password is too weak. Please use a stronger password."
	default:
		return "Failed to create an account"
	}
}

// signInMessage maps provider error codes to the sign-in banner text
func signInMessage(code identity.Code) string {
	switch code {
	case identity.CodeUserNotFound:
		return "No account found with this email address"
	case identity.CodeWrongPassword:
		return "Incorrect password. Please try again."
	case identity.CodeUserDisabled:
		return "This account has been disabled. Please contact support."
	default:
		return "Failed to log in. Please try again."
	}
}
