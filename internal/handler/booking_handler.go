package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create godoc
// @Summary Book a session from a confirmed slot selection
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param status query string false "Booking status"
// @Param session_type query string false "Session type"
// @Param from query string false "Scheduled from (RFC 3339)"
// @Param to query string false "Scheduled to (RFC 3339)"
// @Param search query string false "Search by email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	filter := bookingFilterFromQuery(c)

	bookings, pagination, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings, pagination)
}

// Get godoc
// @Summary Get booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Update godoc
// @Summary Update booking status or notes
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param payload body dto.UpdateBookingRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/bookings/{id} [patch]
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Export godoc
// @Summary Export bookings as CSV or PDF
// @Tags Bookings
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	filter := bookingFilterFromQuery(c)

	data, contentType, err := h.bookings.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func bookingFilterFromQuery(c *gin.Context) models.BookingFilter {
	var filter models.BookingFilter
	if status := strings.ToUpper(c.Query("status")); status != "" {
		v := models.BookingStatus(status)
		filter.Status = &v
	}
	filter.SessionType = c.Query("session_type")
	if from := c.Query("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &ts
		}
	}
	if to := c.Query("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &ts
		}
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}
