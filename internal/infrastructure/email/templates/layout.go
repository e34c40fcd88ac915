// Package templates provides email template layout
package templates

import (
	"bytes"
	"html/template"
	"log"
)

type EmailLayoutProps struct {
	Preheader  string
	Content    string
	FooterText string
	SiteName   string
	SiteURL    string
}

// Internal template data structure with safe HTML typing
type emailTemplateData struct {
	Preheader  string
	Content    template.HTML // rendered by GetContactMessageContent, already escaped
	FooterText string
	SiteName   string
	SiteURL    string
}

var emailLayoutTemplate = template.Must(template.New("emailLayout").Parse(`
<!doctype html>
<html lang="en">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <title>{{.SiteName}}</title>
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.4; background-color: #f4f5f6; margin: 0; padding: 0;">
    <span class="preheader" style="display: none; max-height: 0; overflow: hidden;">{{.Preheader}}</span>
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" bgcolor="#f4f5f6">
      <tr>
        <td align="center" style="padding: 24px;">
          <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="600" style="background: #ffffff; border: 1px solid #eaebed; border-radius: 16px;">
            <tr>
              <td style="padding: 24px;">
                {{.Content}}
              </td>
            </tr>
          </table>
          <p style="color: #9a9ea6; font-size: 14px;">{{.FooterText}} <a href="{{.SiteURL}}" style="color: #9a9ea6;">{{.SiteName}}</a></p>
        </td>
      </tr>
    </table>
  </body>
</html>`))

func GetEmailLayout(props EmailLayoutProps) string {
	preheader := props.Preheader
	if preheader == "" {
		preheader = "New message from the website contact form"
	}

	footerText := props.FooterText
	if footerText == "" {
		footerText = "Sent from the contact form on"
	}

	siteName := props.SiteName
	if siteName == "" {
		siteName = "our website"
	}

	templateData := emailTemplateData{
		Preheader:  preheader,
		Content:    template.HTML(props.Content),
		FooterText: footerText,
		SiteName:   siteName,
		SiteURL:    props.SiteURL,
	}

	var buf bytes.Buffer
	if err := emailLayoutTemplate.Execute(&buf, templateData); err != nil {
		log.Printf("Error executing email layout template: %v", err)
		return "<html><body>Template execution error</body></html>"
	}

	return buf.String()
}
