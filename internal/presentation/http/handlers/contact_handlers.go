package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/email"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// ContactRequest is the public contact form body
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactHandlers struct {
	contactService *services.ContactService
	logger         *logging.ChanneledLogger
}

func NewContactHandlers(contactService *services.ContactService, logger *logging.ChanneledLogger) *ContactHandlers {
	return &ContactHandlers{contactService: contactService, logger: logger}
}

// PostContact handles POST /api/contact
func (h *ContactHandlers) PostContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.contactService.Submit(email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "message sent"})
}
