// Package email provides the email client for relaying contact form messages.
package email

import (
	"errors"
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/email/templates"
)

// ErrNotConfigured is returned by NewService when no API key or recipient is set.
var ErrNotConfigured = errors.New("email relay is not configured")

// ContactMessage is one contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendContactMessage(msg ContactMessage) error
}

// Options configures the Resend client.
type Options struct {
	APIKey    string
	FromEmail string
	FromName  string
	ToEmail   string
	SiteName  string
	SiteURL   string
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client *resend.Client
	opts   Options
}

// NewService creates a new email service client, returning the Service interface.
func NewService(opts Options) (Service, error) {
	if opts.APIKey == "" || opts.ToEmail == "" {
		return nil, ErrNotConfigured
	}
	if opts.FromEmail == "" {
		opts.FromEmail = "noreply@example.com"
	}
	if opts.FromName == "" {
		opts.FromName = "Site Contact Form"
	}

	return &ResendClient{
		client: resend.NewClient(opts.APIKey),
		opts:   opts,
	}, nil
}

// BuildContactEmail composes the request sent for msg.
func (c *ResendClient) BuildContactEmail(msg ContactMessage) *resend.SendEmailRequest {
	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("Contact request from %s", msg.Name)
	}

	content := templates.GetContactMessageContent(templates.ContactMessageProps{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Content:  content,
		SiteName: c.opts.SiteName,
		SiteURL:  c.opts.SiteURL,
	})

	return &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.opts.FromName, c.opts.FromEmail),
		To:      []string{c.opts.ToEmail},
		ReplyTo: msg.Email,
		Subject: subject,
		Html:    htmlContent,
		Text:    msg.Message,
	}
}

// SendContactMessage composes and sends a contact form message to the site owner.
func (c *ResendClient) SendContactMessage(msg ContactMessage) error {
	if _, err := c.client.Emails.Send(c.BuildContactEmail(msg)); err != nil {
		return fmt.Errorf("failed to send contact email via Resend: %w", err)
	}
	return nil
}
