package polar

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrNoAccessToken indicates a 200 token response without an extractable access token.
	ErrNoAccessToken = errors.New("token response contains no access token")
	// ErrAuthorizationCodeRejected indicates a 400 from the token endpoint,
	// most likely an invalid or expired authorization code.
	ErrAuthorizationCodeRejected = errors.New("authorization code rejected (invalid or expired)")
	// ErrClientCredentialsRejected indicates a 401 from the token endpoint,
	// meaning the client id/secret pair is wrong.
	ErrClientCredentialsRejected = errors.New("client credentials rejected")
	// ErrAccessForbidden indicates a 403 from the token endpoint.
	ErrAccessForbidden = errors.New("access forbidden")
	// ErrConsentsNotAccepted indicates the user has not accepted the mandatory API consents.
	ErrConsentsNotAccepted = errors.New("user has not accepted mandatory consents")
	// ErrNoUserData indicates a 204 from the user endpoint: nothing to report, not a failure.
	ErrNoUserData = errors.New("no user data available")
	// ErrUserInfoForbidden indicates a 403 from the user endpoint.
	ErrUserInfoForbidden = errors.New("user information access forbidden")
	// ErrTransport indicates that no HTTP response was obtained at all.
	ErrTransport = errors.New("transport failure, no HTTP response obtained")
)
