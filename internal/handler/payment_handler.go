package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// PaymentHandler exposes checkout and payment lookup endpoints.
type PaymentHandler struct {
	payments   *service.PaymentService
	successURL string
	cancelURL  string
}

// NewPaymentHandler constructs PaymentHandler. successURL and cancelURL
// are the frontend pages the gateway return endpoints redirect to.
func NewPaymentHandler(payments *service.PaymentService, successURL, cancelURL string) *PaymentHandler {
	return &PaymentHandler{payments: payments, successURL: successURL, cancelURL: cancelURL}
}

// Catalog godoc
// @Summary List purchasable coaching types with prices
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/catalog [get]
func (h *PaymentHandler) Catalog(c *gin.Context) {
	response.OK(c, h.payments.Catalog())
}

// CreateCheckout godoc
// @Summary Start a checkout session
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.CreateCheckoutRequest true "Checkout payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments/checkout [post]
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid checkout payload"))
		return
	}

	checkout, err := h.payments.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, checkout)
}

// GetBySession godoc
// @Summary Look up a payment by checkout session id
// @Tags Payments
// @Produce json
// @Param session_id path string true "Checkout session id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /payments/session/{session_id} [get]
func (h *PaymentHandler) GetBySession(c *gin.Context) {
	detail, err := h.payments.GetBySession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Success godoc
// @Summary Gateway return endpoint after a completed payment
// @Tags Payments
// @Param session_id query string true "Checkout session id"
// @Success 302
// @Router /payments/success [get]
func (h *PaymentHandler) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session_id is required"))
		return
	}

	var providerPaymentID *string
	if v := c.Query("transaction_id"); v != "" {
		providerPaymentID = &v
	}
	if err := h.payments.ConfirmBySession(c.Request.Context(), sessionID, providerPaymentID); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.successURL+"?session_id="+sessionID)
}

// Cancel godoc
// @Summary Gateway return endpoint after an abandoned payment
// @Tags Payments
// @Param session_id query string true "Checkout session id"
// @Success 302
// @Router /payments/cancel [get]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session_id is required"))
		return
	}

	if err := h.payments.CancelBySession(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.cancelURL+"?session_id="+sessionID)
}
