package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/obrafacil/obrafacil-api/internal/errors"
	"github.com/obrafacil/obrafacil-api/internal/services"
)

// EmailHandler exposes transactional email delivery.
type EmailHandler struct {
	mailer services.Mailer
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(mailer services.Mailer) *EmailHandler {
	return &EmailHandler{
		mailer: mailer,
	}
}

// SendEmail delivers one HTML message through the configured SMTP server.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	type SendEmailRequest struct {
		To      string `json:"to" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}

	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.mailer == nil {
		apierrors.InternalError(c, "Email delivery is not configured")
		return
	}

	if err := h.mailer.Send(req.To, req.Subject, req.Body); err != nil {
		apierrors.InternalError(c, "Failed to send email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
