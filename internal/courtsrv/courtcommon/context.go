package courtcommon

import (
	"context"
)

// ctxKeyType represents the type for all context keys
type ctxKeyType string

const (
	ctxUserContextKey ctxKeyType = "CourtUserContext"
)

// UserContext represents the verified identity of the caller, as supplied
// by the identity provider in front of this service. The core trusts these
// values unchecked.
type UserContext struct {
	// UserID is the unique identifier for the user
	UserID string
	// UserEmail is the verified email address for the user
	UserEmail string
}

// WithUserContext sets the user context in the provided context.
func WithUserContext(ctx context.Context, userContext *UserContext) context.Context {
	return context.WithValue(ctx, ctxUserContextKey, userContext)
}

// GetUserContext retrieves the user context from the provided context.
// Returns nil when no identity was supplied for the request.
func GetUserContext(ctx context.Context) *UserContext {
	if userContext, ok := ctx.Value(ctxUserContextKey).(*UserContext); ok {
		return userContext
	}
	return nil
}
