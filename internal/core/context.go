package core

import "context"

type contextKey string

const ctxKeyOwner contextKey = "pref_owner"

// ContextWithOwner stores the preference owner (the anonymous browser
// identity or an authenticated user ID) in ctx.
func ContextWithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ctxKeyOwner, owner)
}

// OwnerFromContext extracts the preference owner from ctx.
func OwnerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyOwner).(string); ok {
		return v
	}
	return ""
}
