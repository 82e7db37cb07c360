package auth

import (
	"context"

	"goaltrack/internal/types"
)

type contextKey int

const userKey contextKey = iota

func withUser(ctx context.Context, u *types.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the authenticated user attached by RequireAPI.
func UserFrom(ctx context.Context) (*types.User, bool) {
	u, ok := ctx.Value(userKey).(*types.User)
	return u, ok
}
