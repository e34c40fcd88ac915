package templates

import (
	"bytes"
	"html/template"
	"log"
	"strings"
)

type ContactMessageProps struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type contactTemplateData struct {
	ContactMessageProps
	Paragraphs []string
}

var contactTemplate = template.Must(template.New("contactMessage").Parse(`
<h2 style="margin: 0 0 16px 0; font-size: 20px;">{{if .Subject}}{{.Subject}}{{else}}New contact request{{end}}</h2>
<p style="margin: 0 0 8px 0;"><strong>From:</strong> {{.Name}} &lt;<a href="mailto:{{.Email}}">{{.Email}}</a>&gt;</p>
{{if .Phone}}<p style="margin: 0 0 8px 0;"><strong>Phone:</strong> {{.Phone}}</p>{{end}}
<hr style="border: none; border-top: 1px solid #eaebed; margin: 16px 0;">
{{range .Paragraphs}}<p style="margin: 0 0 12px 0;">{{.}}</p>
{{end}}`))

// GetContactMessageContent renders a contact submission. All values are escaped.
func GetContactMessageContent(props ContactMessageProps) string {
	var paragraphs []string
	for _, p := range strings.Split(strings.ReplaceAll(props.Message, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, contactTemplateData{ContactMessageProps: props, Paragraphs: paragraphs}); err != nil {
		log.Printf("Error executing contact template: %v", err)
		return ""
	}
	return buf.String()
}
