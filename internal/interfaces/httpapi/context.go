package httpapi

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	adminContextKey     contextKey = "admin_user"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withAdmin(ctx context.Context, admin user.AuthorizedUser) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

func adminFromContext(ctx context.Context) (user.AuthorizedUser, bool) {
	admin, ok := ctx.Value(adminContextKey).(user.AuthorizedUser)
	return admin, ok
}
