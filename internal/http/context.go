package http

import (
	"context"

	"portfolio/app/internal/content"
)

type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	currentUserKey contextKey = "current_user"
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request identifier assigned by the
// middleware, or an empty string when none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func withCurrentUser(ctx context.Context, user *content.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUserFromContext returns the signed-in user resolved by the session
// middleware, or nil for anonymous requests.
func CurrentUserFromContext(ctx context.Context) *content.User {
	user, _ := ctx.Value(currentUserKey).(*content.User)
	return user
}
