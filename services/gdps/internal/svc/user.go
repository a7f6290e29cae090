package svc

import (
	"context"

	dom "github.com/gdps-go/gdps/internal/ports"
)

type userKey struct{}

// WithUser stores the authenticated account in ctx.
func WithUser(ctx context.Context, u *dom.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the authenticated account, or nil for anonymous requests.
func UserFrom(ctx context.Context) *dom.User {
	u, _ := ctx.Value(userKey{}).(*dom.User)
	return u
}

// UserID is the authenticated account id, zero when anonymous.
func UserID(ctx context.Context) int {
	if u := UserFrom(ctx); u != nil {
		return u.ID
	}
	return 0
}
