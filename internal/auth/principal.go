package auth

import "context"

// Principal is the identity proven by a verified access token.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type principalKey string

const principalCtx principalKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtx, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtx).(Principal)
	return p, ok
}
