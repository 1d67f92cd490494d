package polar

import (
	"fmt"
	"io"
)

// TokenExchange is the successful result of an authorization-code exchange.
type TokenExchange struct {
	// AccessToken is the bearer credential for all subsequent API calls.
	// It lives for the duration of one invocation and is never persisted.
	AccessToken string `json:"access_token"`
	// TokenType is the OAuth2 token type, "bearer" for AccessLink.
	TokenType string `json:"token_type"`
	// ExpiresIn is the token lifetime in seconds as reported by the endpoint.
	ExpiresIn int64 `json:"expires_in"`
	// PolarUserID is the numeric Polar-side user id bound to the token.
	PolarUserID int64 `json:"x_user_id"`
}

// RegistrationOutcome classifies the result of a member registration attempt.
type RegistrationOutcome uint8

const (
	// RegistrationUnknown - no classification (transport failure before any status).
	RegistrationUnknown RegistrationOutcome = iota
	// RegistrationRegistered - the member was registered now.
	RegistrationRegistered
	// RegistrationAlreadyRegistered - the member was registered on an earlier run.
	// Treated as success: registration is idempotent.
	RegistrationAlreadyRegistered
	// RegistrationConsentsNotAccepted - the user has not accepted the mandatory consents.
	RegistrationConsentsNotAccepted
	// RegistrationFailed - any other failure.
	RegistrationFailed
)

// String returns a human-readable representation of the RegistrationOutcome.
func (ro RegistrationOutcome) String() string {
	switch ro {
	case RegistrationUnknown:
		return "unknown"
	case RegistrationRegistered:
		return "registered"
	case RegistrationAlreadyRegistered:
		return "already registered"
	case RegistrationConsentsNotAccepted:
		return "consents not accepted"
	case RegistrationFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown: %d", ro)
	}
}

// UserInfo holds the profile fields of a registered member.
// Every field is optional: a nil pointer means the payload did not carry it,
// and absence of one field never blocks extraction of the others.
type UserInfo struct {
	// PolarUserID is the numeric Polar-side user id.
	PolarUserID *int64 `json:"polar-user-id"`
	// MemberID is the partner-side member identifier.
	MemberID *string `json:"member-id"`
	// FirstName is the user's first name.
	FirstName *string `json:"first-name"`
	// LastName is the user's last name.
	LastName *string `json:"last-name"`
	// Birthdate is the user's birthdate in YYYY-MM-DD form.
	Birthdate *string `json:"birthdate"`
	// Gender is the user's gender as reported by the API.
	Gender *string `json:"gender"`
	// Weight is the user's weight in kilograms.
	Weight *float64 `json:"weight"`
	// Height is the user's height in centimeters.
	Height *float64 `json:"height"`
}

// HeartRateResult is the raw outcome of a per-day continuous heart-rate request.
// The caller owns Body and must close it; classification of the status code
// (downloaded / no data / failed) is the caller's decision.
type HeartRateResult struct {
	// StatusCode is the HTTP status returned by the endpoint.
	StatusCode int
	// ContentLength is the advertised body size, -1 when unknown.
	ContentLength int64
	// Body streams the payload exactly as the endpoint sent it.
	Body io.ReadCloser
}
