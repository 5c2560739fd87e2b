package auth

import (
	"context"
	"strings"
)

// UserContext holds the authenticated operator and the session the request belongs to
type UserContext struct {
	Username    string
	DisplayName string
	Role        string
	SessionID   string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// SessionIDFromContext returns the session of the authenticated request, if any
func SessionIDFromContext(ctx context.Context) (string, bool) {
	user, ok := FromContext(ctx)
	if !ok || user.SessionID == "" {
		return "", false
	}
	return user.SessionID, true
}

// Initials returns initials from the display name (e.g., "Admin User" -> "AU")
func (u *UserContext) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.DisplayName) {
		first := []rune(part)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	return b.String()
}
