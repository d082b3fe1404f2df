package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	var p password
	require.NoError(t, p.Set("correct horse"))

	assert.NoError(t, p.Compare("correct horse"))
	assert.Error(t, p.Compare("battery staple"))
}

func TestUserJSONHidesPassword(t *testing.T) {
	u := User{ID: "u-1", Email: "a@b.c", Role: "ADMIN"}
	require.NoError(t, u.Password.Set("secret-password"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret-password")
	assert.Contains(t, string(raw), `"role":"ADMIN"`)
}
