package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig is built once at startup and never changed.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type JWTAuthenticator struct {
	secret []byte
	iss    string
	aud    string
	exp    time.Duration
	now    func() time.Time
}

func NewJWTAuthenticator(cfg TokenConfig) (*JWTAuthenticator, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: token secret is empty")
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = time.Hour * 24 * 3 // 3 days
	}
	return &JWTAuthenticator{
		secret: []byte(cfg.Secret),
		iss:    cfg.Issuer,
		aud:    cfg.Audience,
		exp:    cfg.Expiry,
		now:    time.Now,
	}, nil
}

// GenerateToken signs an access token for subject carrying role.
func (a *JWTAuthenticator) GenerateToken(subject string, role Role) (string, error) {
	if subject == "" {
		return "", errors.New("auth: empty subject")
	}
	if !role.Valid() {
		return "", fmt.Errorf("auth: cannot issue token for role %q", role)
	}
	now := a.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"exp":  now.Add(a.exp).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"iss":  a.iss,
		"aud":  a.aud,
	}
	return a.generateTokenWithClaims(claims)
}

func (a *JWTAuthenticator) generateTokenWithClaims(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateAccessToken checks signature, algorithm, expiry, issuer and audience.
func (a *JWTAuthenticator) ValidateAccessToken(token string) (*jwt.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	}
	if a.iss != "" {
		opts = append(opts, jwt.WithIssuer(a.iss))
	}
	if a.aud != "" {
		opts = append(opts, jwt.WithAudience(a.aud))
	}
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
}
