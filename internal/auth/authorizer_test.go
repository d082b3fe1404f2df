package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthenticator(t *testing.T) *JWTAuthenticator {
	t.Helper()
	a, err := NewJWTAuthenticator(TokenConfig{
		Secret:   testSecret,
		Issuer:   "estate",
		Audience: "estate",
		Expiry:   time.Hour,
	})
	require.NoError(t, err)
	return a
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func baseClaims(role any) jwt.MapClaims {
	now := time.Now()
	c := jwt.MapClaims{
		"sub": "user-1",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"iss": "estate",
		"aud": "estate",
	}
	if role != nil {
		c["role"] = role
	}
	return c
}

func bearer(token string) string {
	return "Bearer " + token
}

func assertRejection(t *testing.T, err error, kind error, reason string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	var rej *Rejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, reason, rej.Reason)
}

func TestAuthorize_NoCredential(t *testing.T) {
	authz := NewAuthorizer(newTestAuthenticator(t))

	headers := []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "Token abc", "abc"}
	requirements := []RoleSet{AllRoles(), NewRoleSet(RoleAdmin), NewRoleSet(RoleTenant, RoleGuest)}

	for _, h := range headers {
		for _, req := range requirements {
			_, err := authz.AuthorizeHeader(h, req)
			assertRejection(t, err, ErrUnauthenticated, ReasonNoCredential)
		}
	}
}

func TestAuthorize_MissingHeaderOnRequest(t *testing.T) {
	authz := NewAuthorizer(newTestAuthenticator(t))
	r := httptest.NewRequest(http.MethodGet, "/v1/buildings", nil)

	_, err := authz.Authorize(r, AllRoles())
	assertRejection(t, err, ErrUnauthenticated, ReasonNoCredential)
}

func TestAuthorize_InvalidCredentials(t *testing.T) {
	authz := NewAuthorizer(newTestAuthenticator(t))

	expired := baseClaims("ADMIN")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noExp := baseClaims("ADMIN")
	delete(noExp, "exp")

	notYet := baseClaims("ADMIN")
	notYet["nbf"] = time.Now().Add(time.Hour).Unix()

	wrongIssuer := baseClaims("ADMIN")
	wrongIssuer["iss"] = "someone-else"

	noSubject := baseClaims("ADMIN")
	delete(noSubject, "sub")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims("ADMIN")).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, baseClaims("ADMIN")).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: signed(t, "other-secret", baseClaims("ADMIN"))},
		{name: "expired", token: signed(t, testSecret, expired)},
		{name: "missing exp", token: signed(t, testSecret, noExp)},
		{name: "not yet valid", token: signed(t, testSecret, notYet)},
		{name: "wrong issuer", token: signed(t, testSecret, wrongIssuer)},
		{name: "missing subject", token: signed(t, testSecret, noSubject)},
		{name: "alg none", token: unsigned},
		{name: "unexpected algorithm", token: hs512},
		{name: "garbage", token: "not.a.jwt"},
		{name: "truncated", token: signed(t, testSecret, baseClaims("ADMIN"))[:20]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authz.AuthorizeHeader(bearer(tt.token), AllRoles())
			assertRejection(t, err, ErrUnauthenticated, ReasonInvalidToken)
		})
	}
}

func TestAuthorize_ExpiredBeatsRole(t *testing.T) {
	authz := NewAuthorizer(newTestAuthenticator(t))

	claims := baseClaims("ADMIN")
	claims["exp"] = time.Now().Add(-time.Second).Unix()

	_, err := authz.AuthorizeHeader(bearer(signed(t, testSecret, claims)), NewRoleSet(RoleAdmin))
	assertRejection(t, err, ErrUnauthenticated, ReasonInvalidToken)
}

func TestAuthorize_UnknownRole(t *testing.T) {
	authz := NewAuthorizer(newTestAuthenticator(t))

	tests := []struct {
		name string
		role any
	}{
		{name: "superuser", role: "SUPERUSER"},
		{name: "lowercase admin", role: "admin"},
		{name: "empty", role: ""},
		{name: "missing", role: nil},
		{name: "not a string", role: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signed(t, testSecret, baseClaims(tt.role))
			_, err := authz.AuthorizeHeader(bearer(token), AllRoles())
			assertRejection(t, err, ErrForbidden, ReasonUnknownRole)
		})
	}
}

func TestAuthorize_RoleRequirement(t *testing.T) {
	a := newTestAuthenticator(t)
	authz := NewAuthorizer(a)

	tests := []struct {
		name     string
		role     Role
		required RoleSet
		wantErr  error
	}{
		{name: "admin allowed", role: RoleAdmin, required: NewRoleSet(RoleAdmin, RoleManager)},
		{name: "manager allowed", role: RoleManager, required: NewRoleSet(RoleAdmin, RoleManager)},
		{name: "tenant denied", role: RoleTenant, required: NewRoleSet(RoleAdmin), wantErr: ErrForbidden},
		{name: "guest with default", role: RoleGuest, required: AllRoles()},
		{name: "cashier with zero value", role: RoleCashier, required: RoleSet{}},
		{name: "only unknown roles required", role: RoleAdmin, required: NewRoleSet(Role("ROOT")), wantErr: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := a.GenerateToken("user-42", tt.role)
			require.NoError(t, err)

			p, err := authz.AuthorizeHeader(bearer(token), tt.required)
			if tt.wantErr != nil {
				assertRejection(t, err, tt.wantErr, ReasonRoleNotAllowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Principal{ID: "user-42", Role: tt.role}, p)
		})
	}
}

func TestAuthorize_Idempotent(t *testing.T) {
	a := newTestAuthenticator(t)
	authz := NewAuthorizer(a)

	token, err := a.GenerateToken("user-7", RoleTenant)
	require.NoError(t, err)

	for _, required := range []RoleSet{NewRoleSet(RoleTenant), NewRoleSet(RoleAdmin)} {
		p1, err1 := authz.AuthorizeHeader(bearer(token), required)
		p2, err2 := authz.AuthorizeHeader(bearer(token), required)
		assert.Equal(t, p1, p2)
		assert.Equal(t, err1, err2)
	}
}

func TestAuthorize_Concurrent(t *testing.T) {
	a := newTestAuthenticator(t)
	authz := NewAuthorizer(a)

	token, err := a.GenerateToken("user-9", RoleStaff)
	require.NoError(t, err)

	done := make(chan error, 50)
	for i := 0; i < 50; i++ {
		go func(i int) {
			header := bearer(token)
			if i%2 == 0 {
				header = bearer("garbage")
			}
			_, err := authz.AuthorizeHeader(header, NewRoleSet(RoleStaff))
			if i%2 == 0 && !errors.Is(err, ErrUnauthenticated) {
				done <- errors.New("expected unauthenticated")
				return
			}
			if i%2 == 1 && err != nil {
				done <- err
				return
			}
			done <- nil
		}(i)
	}
	for i := 0; i < 50; i++ {
		assert.NoError(t, <-done)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "  Bearer   abc  ", want: "abc", ok: true},
		{header: "Bearer", ok: false},
		{header: "Bearerabc", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
