package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, body, err := render(UserWelcomeTemplate, struct {
		Username string
		Role     string
		LoginURL string
	}{"ada", "TENANT", "https://estate.example/login"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Estate, ada", subject)
	assert.Contains(t, body, "Hi ada,")
	assert.Contains(t, body, "<strong>TENANT</strong>")
	assert.Contains(t, body, `href="https://estate.example/login"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestNewSMTPMailerRequiresHostAndSender(t *testing.T) {
	_, err := NewSMTPMailer("", 587, "", "", "no-reply@estate.example")
	assert.Error(t, err)

	_, err = NewSMTPMailer("smtp.estate.example", 587, "", "", "")
	assert.Error(t, err)

	m, err := NewSMTPMailer("smtp.estate.example", 587, "user", "pass", "no-reply@estate.example")
	require.NoError(t, err)
	assert.Equal(t, "no-reply@estate.example", m.fromEmail)
}

func TestDiscard(t *testing.T) {
	var c Client = Discard{}
	assert.NoError(t, c.Send(UserWelcomeTemplate, "ada", "ada@estate.example", nil))
}
