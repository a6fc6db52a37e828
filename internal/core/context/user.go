// Package context provides typed access to request-scoped values.
package context

import (
	"context"
)

// UserContext carries the authenticated user through the request.
type UserContext struct {
	UserID   string
	Username string
}

type userKey struct{}

// WithUser stores user info in context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns user info from context, or nil when unauthenticated.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

// GetUserID returns the authenticated user id, or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}
