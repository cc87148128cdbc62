package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"planpact/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer holds every embedded template, parsed once. Each notification kind has
// <kind>_subject.txt, <kind>.txt and <kind>.html; only the HTML set escapes its input.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer backed by the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("email").ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("email").ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(n *domain.Notification) (domain.EmailMessage, error) {
	kind := string(n.Kind)
	var subject, text, html bytes.Buffer
	if err := r.text.ExecuteTemplate(&subject, kind+"_subject.txt", n); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render %s subject: %w", kind, err)
	}
	if err := r.text.ExecuteTemplate(&text, kind+".txt", n); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render %s text: %w", kind, err)
	}
	if err := r.html.ExecuteTemplate(&html, kind+".html", n); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render %s html: %w", kind, err)
	}
	return domain.EmailMessage{
		To:      n.To,
		Subject: strings.TrimSpace(subject.String()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
