package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator verifies a raw bearer token.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Token, error)
}

// Authorizer turns a bearer credential plus a role requirement into a
// Principal or a *Rejection. It holds no mutable state and is safe for
// concurrent use.
type Authorizer struct {
	tokens TokenValidator
}

func NewAuthorizer(tokens TokenValidator) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize reads the Authorization header of r.
func (a *Authorizer) Authorize(r *http.Request, required RoleSet) (Principal, error) {
	return a.AuthorizeHeader(r.Header.Get("Authorization"), required)
}

// AuthorizeHeader decides on a raw Authorization header value.
func (a *Authorizer) AuthorizeHeader(header string, required RoleSet) (Principal, error) {
	raw, ok := BearerToken(header)
	if !ok {
		return Principal{}, unauthenticated(ReasonNoCredential)
	}

	token, err := a.tokens.ValidateAccessToken(raw)
	if err != nil || token == nil || !token.Valid {
		return Principal{}, unauthenticated(ReasonInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, unauthenticated(ReasonInvalidToken)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Principal{}, unauthenticated(ReasonInvalidToken)
	}

	claim, _ := claims["role"].(string)
	role := Role(claim)
	if !role.Valid() {
		return Principal{}, forbidden(ReasonUnknownRole)
	}

	if !required.Contains(role) {
		return Principal{}, forbidden(ReasonRoleNotAllowed)
	}

	return Principal{ID: subject, Role: role}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
