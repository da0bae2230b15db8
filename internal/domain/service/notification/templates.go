package notification

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Message is the rendered content of one buyer notification.
type Message struct {
	Subject string
	Body    string
	SMS     string
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	printer := message.NewPrinter(language.English)

	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return printer.Sprintf("$%d", d.Round(0).IntPart())
		},
		"assetType": func(t value.AssetType) string {
			return strings.ReplaceAll(t.String(), "_", " ")
		},
		"truncate": func(s string, n int) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "..."
		},
	}

	tmpl, err := template.New("notification").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(n entity.PendingNotification) (Message, error) {
	subject, err := r.execute("email_subject.txt.tmpl", n)
	if err != nil {
		return Message{}, err
	}

	body, err := r.execute("email_body.txt.tmpl", n)
	if err != nil {
		return Message{}, err
	}

	sms, err := r.execute("sms.txt.tmpl", n)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Subject: strings.TrimSpace(subject),
		Body:    body,
		SMS:     strings.TrimSpace(sms),
	}, nil
}

func (r *Renderer) execute(name string, n entity.PendingNotification) (string, error) {
	var buf bytes.Buffer

	if err := r.templates.ExecuteTemplate(&buf, name, n); err != nil {
		return "", fmt.Errorf("template.ExecuteTemplate %s: %w", name, err)
	}

	return buf.String(), nil
}
