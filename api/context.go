package api

import (
	"context"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated caller's id to the context
func ctxWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the caller's id from the context. ok is false for
// anonymous requests.
func ctxGetUserID(ctx context.Context) (uint, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
