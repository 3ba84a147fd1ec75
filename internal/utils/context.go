// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, identifier
// generation, HTTP client initialization and JWT inspection.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionIDCtxKey is the key used to store the sync session identifier in
// the context.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithSessionID(ctx, "0190...")
var SessionIDCtxKey = contextKey("sessionID")

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetSessionIDFromContext retrieves the sync session identifier from the
// context.
//
// Returns the session ID and an ok flag:
//   - ok == true: value is found and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
