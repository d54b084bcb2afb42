package core

import (
	"bytes"
	"net/mail"
	"strings"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/shulehq/shule/assets"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
	}

	// ContextData wraps the template data with app-wide context.
	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render resolves the message's TextContent, either from BodyStr or
// by executing the named template from the embedded assets.
func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	tmpl, err := texttmpl.ParseFS(assets.FS, "templates/"+m.TemplateName+".txt")
	if err != nil {
		return errors.Wrapf(err, "parsing template %s", m.TemplateName)
	}

	var buf bytes.Buffer
	data := ContextData{FrontendBaseURL: strings.TrimSuffix(conf.FrontendBaseURL, "/"), Data: m.TemplateData}
	if err := tmpl.Execute(&buf, data); err != nil {
		return errors.Wrapf(err, "executing template %s", m.TemplateName)
	}
	m.TextContent = buf.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return (len(m.To) + len(m.Cc) + len(m.Bcc)) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != ""
}
