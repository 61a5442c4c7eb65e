package middleware

import "context"

type contextKey string

const (
	ctxPrincipalID contextKey = "principal_id"
	ctxRole        contextKey = "actor_role"
)

func PrincipalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPrincipalID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithPrincipalID injects the authenticated principal id into the context.
func WithPrincipalID(ctx context.Context, principalID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipalID, principalID)
}

// WithRole injects the authenticated role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
