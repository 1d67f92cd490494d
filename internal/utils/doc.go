// Package utils provides small shared helpers with no domain logic.
package utils
