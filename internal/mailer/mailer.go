package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

const (
	FromName            = "Estate"
	maxRetries          = 3
	UserWelcomeTemplate = "user_welcome.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) error
}

// Discard accepts every message and sends nothing. Used when no SMTP host
// is configured.
type Discard struct{}

func (Discard) Send(string, string, string, any) error { return nil }

// render executes the "subject" and "body" blocks of templateFile.
func render(templateFile string, data any) (subject, body string, err error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", err
	}

	s := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(s, "subject", data); err != nil {
		return "", "", err
	}

	b := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(b, "body", data); err != nil {
		return "", "", err
	}

	return s.String(), b.String(), nil
}
