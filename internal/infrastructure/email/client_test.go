package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresKeyAndRecipient(t *testing.T) {
	t.Parallel()
	_, err := NewService(Options{APIKey: "re_test"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewService(Options{ToEmail: "owner@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildContactEmail_EscapesInput(t *testing.T) {
	t.Parallel()
	svc, err := NewService(Options{APIKey: "re_test", ToEmail: "owner@example.com", SiteName: "TSB"})
	require.NoError(t, err)

	req := svc.(*ResendClient).BuildContactEmail(ContactMessage{
		Name:    "Kai",
		Email:   "kai@example.com",
		Message: "Hello <script>alert(1)</script>\n\nSecond paragraph",
	})

	assert.Equal(t, []string{"owner@example.com"}, req.To)
	assert.Equal(t, "kai@example.com", req.ReplyTo)
	assert.Equal(t, "Contact request from Kai", req.Subject)
	assert.Equal(t, "Site Contact Form <noreply@example.com>", req.From)
	assert.NotContains(t, req.Html, "<script>")
	assert.Contains(t, req.Html, "&lt;script&gt;")
	assert.Contains(t, req.Html, "Second paragraph")
}
