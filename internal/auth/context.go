package auth

import (
	"context"

	"github.com/GokulM8/taskflow/internal/model"
)

type contextKey string

const userKey contextKey = "user_id"

// WithUser returns a context carrying the authenticated user id.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey).(int64)
	return id, ok && id > 0
}

// RequireUser returns the authenticated user id or model.ErrNotAuthenticated.
func RequireUser(ctx context.Context) (int64, error) {
	id, ok := UserID(ctx)
	if !ok {
		return 0, model.ErrNotAuthenticated
	}
	return id, nil
}
