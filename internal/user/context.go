package user

import "context"

type ctxKey string

// ContextCallerKey indexes the authenticated caller in the request context.
const ContextCallerKey ctxKey = "caller"

func ContextWithCaller(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextCallerKey, u)
}

// CallerFromContext returns the authenticated caller placed by the auth middleware.
func CallerFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextCallerKey).(*User)
	return u, ok
}
