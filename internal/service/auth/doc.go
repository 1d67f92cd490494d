// Package auth implements the interactive browser flow that obtains an
// OAuth2 authorization code: it opens the Polar consent page and watches
// the navigation until the redirect URL delivers the code.
package auth
