package services

import (
	"net/mail"
	"strings"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/email"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

const maxContactMessageLength = 5000

// ContactService relays contact form submissions by email
type ContactService struct {
	mailer email.Service
	logger *logging.ChanneledLogger
}

// NewContactService creates the relay. A nil mailer disables it.
func NewContactService(mailer email.Service, logger *logging.ChanneledLogger) *ContactService {
	return &ContactService{mailer: mailer, logger: logger}
}

func (s *ContactService) Enabled() bool {
	return s.mailer != nil
}

// Submit validates and forwards one message
func (s *ContactService) Submit(msg email.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "":
		return invalid("name is required")
	case msg.Message == "":
		return invalid("message is required")
	case len(msg.Message) > maxContactMessageLength:
		return invalid("message is too long")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return invalid("a valid email address is required")
	}

	if s.mailer == nil {
		return ErrContactDisabled
	}
	if err := s.mailer.SendContactMessage(msg); err != nil {
		s.logger.HTTP().Error("Failed to relay contact message", "from", msg.Email, "error", err.Error())
		return err
	}
	s.logger.HTTP().Info("Contact message relayed", "from", msg.Email)
	return nil
}
