package auth

import "github.com/golang-jwt/jwt/v5"

type Authenticator interface {
	GenerateToken(subject string, role Role) (string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
}
