package auth

import "context"

type contextKey string

const userContextKey contextKey = "user"

// UserContext carries the authenticated caller's identity through the
// request context.
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
}

// WithUserContext returns a context carrying the user identity.
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the user identity, if present.
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
