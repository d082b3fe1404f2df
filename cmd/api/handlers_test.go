package main

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estate/internal/auth"
	"estate/internal/domain/users"
	"estate/internal/mailer"
	"estate/internal/ratelimiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, env *testEnv, id, email, pass string, role auth.Role, active bool) {
	t.Helper()
	u := &users.User{ID: id, Email: email, FullName: "Seeded " + string(role), Role: role, IsActive: active}
	require.NoError(t, u.Password.Set(pass))
	env.users.byID[id] = u
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateToken(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env, adminID, "admin@estate.local", "correct-horse", auth.RoleManager, true)
	seedUser(t, env, tenantB, "gone@estate.local", "correct-horse", auth.RoleTenant, false)
	mux := env.app.mount()

	t.Run("valid credentials", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, postJSON("/v1/authentication/token", `{"email":"Admin@Estate.local","password":"correct-horse"}`))
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Data struct {
				Token string `json:"token"`
				User  struct {
					ID   string `json:"id"`
					Role string `json:"role"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, adminID, body.Data.User.ID)
		assert.NotContains(t, rr.Body.String(), "password")

		p, err := env.app.authorizer.AuthorizeHeader("Bearer "+body.Data.Token, auth.AllRoles())
		require.NoError(t, err)
		assert.Equal(t, auth.Principal{ID: adminID, Role: auth.RoleManager}, p)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"email":"admin@estate.local","password":"battery-staple"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@estate.local","password":"correct-horse"}`, http.StatusUnauthorized},
		{"inactive account", `{"email":"gone@estate.local","password":"correct-horse"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"admin@estate.local"}`, http.StatusBadRequest},
		{"not an email", `{"email":"admin","password":"correct-horse"}`, http.StatusBadRequest},
		{"unknown field", `{"email":"admin@estate.local","password":"correct-horse","role":"ADMIN"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, postJSON("/v1/authentication/token", tt.body))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.app.config.LoginRequestsPerMinute = 2
	mux := env.app.mount()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := postJSON("/v1/authentication/token", `{"email":"nobody@estate.local","password":"whatever1"}`)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRegisterForcesUserRole(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	body := `{"email":"Ada@Example.com","full_name":"Ada Obi","username":"adaobi","password":"password123","role":"ADMIN"}`
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, postJSON("/v1/authentication/user", body))
	env.app.wg.Wait()

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, env.users.created, 1)
	created := env.users.created[0]
	assert.Equal(t, auth.RoleUser, created.Role)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.True(t, created.IsActive)
	assert.NoError(t, created.Password.Compare("password123"))

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, sentMail{template: mailer.UserWelcomeTemplate, email: "ada@example.com"}, env.mail.sent[0])

	t.Run("duplicate email", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, postJSON("/v1/authentication/user", body))
		env.app.wg.Wait()

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Len(t, env.mail.sent, 1)
	})
}

func TestAdminCreateUser(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()
	bearer := "Bearer " + env.token(t, adminID, auth.RoleAdmin)

	t.Run("known role", func(t *testing.T) {
		req := postJSON("/v1/users", `{"email":"cashier@estate.local","full_name":"Front Desk","username":"frontdesk","password":"password123","role":"CASHIER"}`)
		req.Header.Set("Authorization", bearer)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		env.app.wg.Wait()

		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, env.users.created, 1)
		assert.Equal(t, auth.RoleCashier, env.users.created[0].Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := postJSON("/v1/users", `{"email":"boss@estate.local","full_name":"Boss","username":"boss","password":"password123","role":"SUPERUSER"}`)
		req.Header.Set("Authorization", bearer)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Len(t, env.users.created, 1)
	})
}

func TestListQueryErrors(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()
	bearer := "Bearer " + env.token(t, adminID, auth.RoleAdmin)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"bad fromDate", "/v1/buildings?fromDate=yesterday", http.StatusBadRequest},
		{"bad toDate", "/v1/rents?toDate=2024-13-45", http.StatusBadRequest},
		{"bad filter id", "/v1/apartments?buildingId=abc", http.StatusBadRequest},
		{"good dates", "/v1/buildings?fromDate=2024-01-01&toDate=2024-02-01T10:00:00Z", http.StatusOK},
		{"bad path id", "/v1/buildings/abc", http.StatusBadRequest},
		{"missing row", "/v1/buildings/404", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", bearer)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestDeleteBuildingInUse(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodDelete, "/v1/buildings/409", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, adminID, auth.RoleAdmin))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodPost, "/v1/buildings/1/image", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+env.token(t, adminID, auth.RoleManager))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestExportBuildingsCSV(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/buildings/export.csv", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, adminID, auth.RoleManager))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `attachment; filename="buildings-`)

	records, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "name", "address", "law_firm_id", "manager_id", "image_url", "created_at"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Marina Court", records[1][1])
	assert.Equal(t, "", records[1][3])
}

func TestExportRentsIsNotTenantVisible(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/rents/export.csv", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, tenantA, auth.RoleTenant))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, env.calls.count())
}

func TestHealthRequiresBasicAuth(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	basic := func(user, pass string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"bearer token", "Bearer " + env.token(t, adminID, auth.RoleAdmin), http.StatusUnauthorized},
		{"wrong password", basic("ops", "nope"), http.StatusUnauthorized},
		{"valid", basic("ops", "ops-pass"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}

	t.Run("empty configured password", func(t *testing.T) {
		env := newTestEnv(t)
		env.app.config.BasicPass = ""
		mux := env.app.mount()

		req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
		req.Header.Set("Authorization", basic("ops", ""))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestSecureHeaders(t *testing.T) {
	env := newTestEnv(t)
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/buildings", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestGlobalRateLimiter(t *testing.T) {
	env := newTestEnv(t)
	env.app.config.RateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	env.app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)
	mux := env.app.mount()

	bearer := "Bearer " + env.token(t, adminID, auth.RoleAdmin)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/buildings", nil)
		req.RemoteAddr = "198.51.100.4:40000"
		req.Header.Set("Authorization", bearer)
		last = httptest.NewRecorder()
		mux.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	req := httptest.NewRequest(http.MethodGet, "/v1/buildings", nil)
	req.RemoteAddr = "198.51.100.5:40000"
	req.Header.Set("Authorization", bearer)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env, tenantA, "tenant@estate.local", "password123", auth.RoleTenant, true)
	mux := env.app.mount()
	bearer := "Bearer " + env.token(t, tenantA, auth.RoleTenant)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", bearer)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tenant@estate.local")

	req = httptest.NewRequest(http.MethodPut, "/v1/users/me", strings.NewReader(`{"full_name":"Tola Tenant"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Tola Tenant", env.users.byID[tenantA].FullName)
	assert.Equal(t, auth.RoleTenant, env.users.byID[tenantA].Role)

	t.Run("role cannot be changed through own profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/users/me", strings.NewReader(`{"role":"ADMIN"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, auth.RoleTenant, env.users.byID[tenantA].Role)
	})
}

func TestExtractPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "versioned",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/buildings/building_1_99.jpg",
			want: "buildings/building_1_99",
		},
		{
			name: "unversioned",
			url:  "https://res.cloudinary.com/demo/image/upload/building_1_99.png",
			want: "building_1_99",
		},
		{
			name:    "not a cloudinary path",
			url:     "https://example.com/images/a.png",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractPublicIDFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
