package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// ContactHandler exposes the contact form endpoint plus an admin
// notification smoke test.
type ContactHandler struct {
	contact  *service.ContactService
	notifier *service.NotifierService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contact *service.ContactService, notifier *service.NotifierService) *ContactHandler {
	return &ContactHandler{contact: contact, notifier: notifier}
}

// Send godoc
// @Summary Submit the contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body dto.ContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Send(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact payload"))
		return
	}

	result, err := h.contact.Send(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// TestNotification godoc
// @Summary Send a test message to the notification channel
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/notifications/test [post]
func (h *ContactHandler) TestNotification(c *gin.Context) {
	result := h.notifier.SendNow(c.Request.Context(), "Test notification from the back office.")
	response.OK(c, result)
}
