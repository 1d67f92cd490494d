// Package polar implements the HTTP client for the Polar AccessLink REST API:
// OAuth2 authorization-code exchange, member registration, user profile
// retrieval, and per-day continuous heart-rate downloads.
package polar
