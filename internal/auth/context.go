// ABOUTME: Request-scoped identity propagation
// ABOUTME: Stores the authenticated numeric user id in the context

package auth

import "context"

// contextKey is a private type to avoid collisions with other packages
type contextKey struct{}

// identityKey is the context key for the authenticated user id
var identityKey = contextKey{}

// WithIdentity returns a new context carrying the authenticated user id
func WithIdentity(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, identityKey, userID)
}

// IdentityFromContext extracts the authenticated user id from the context.
// The second return value is false if no identity is present.
func IdentityFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(identityKey).(int64)
	return userID, ok
}
