// Package common defines sentinel errors shared across the client layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session gating: data operations require an authenticated session.
	ErrNotLoggedIn = errors.New("not logged in")

	// Remote call errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrNotFound     = errors.New("not found")
)
