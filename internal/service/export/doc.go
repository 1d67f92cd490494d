// Package export orchestrates the heart-rate export session: authorization,
// member registration, and the per-day download loop over the 30-day window.
package export
