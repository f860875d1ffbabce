package auth

import (
	"context"

	"github.com/devportal/devportal/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// sessionContextKey is the context key for storing the session user.
	sessionContextKey contextKey = "session_user"
)

// ContextWithUser adds the session user to the context.
func ContextWithUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionContextKey, user)
}

// UserFromContext retrieves the session user from the context.
// Returns nil if not present.
func UserFromContext(ctx context.Context) *model.SessionUser {
	user, ok := ctx.Value(sessionContextKey).(*model.SessionUser)
	if !ok {
		return nil
	}
	return user
}

// UserIDFromContext is a convenience function to get the user ID from context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	user := UserFromContext(ctx)
	if user == nil {
		return ""
	}
	return user.ID
}
