package usecase

import (
	"fmt"
	"strings"
	"text/template"
)

// templateData is the value every reminder template is executed against.
type templateData struct {
	ClientName  string
	DossierRef  string
	ClaimNumber string
	Plate       string
	DaysWaited  int
	ExpertName  string
}

func render(name, src string, data templateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("render %s template: empty message", name)
	}
	return out, nil
}

func renderEmail(name, subjectSrc, bodySrc string, data templateData) (subject, body string, err error) {
	if subject, err = render(name+"_subject", subjectSrc, data); err != nil {
		return "", "", err
	}
	if body, err = render(name, bodySrc, data); err != nil {
		return "", "", err
	}
	return subject, body, nil
}
