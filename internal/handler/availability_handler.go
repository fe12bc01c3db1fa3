package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// AvailabilityHandler exposes slot and exception endpoints.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// ListSlots godoc
// @Summary List availability slots
// @Tags Availability
// @Produce json
// @Param day query int false "Day of week (0 = Sunday)"
// @Param session_type query string false "Session type"
// @Param active query bool false "Filter by active state"
// @Success 200 {object} response.Envelope
// @Router /availability/slots [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	var filter models.SlotFilter
	if day := c.Query("day"); day != "" {
		if v, err := strconv.Atoi(day); err == nil {
			filter.DayOfWeek = &v
		}
	}
	filter.SessionType = c.Query("session_type")
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	slots, err := h.availability.ListSlots(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slots)
}

// CreateSlot godoc
// @Summary Create availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.CreateSlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/availability/slots [post]
func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.availability.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateSlot godoc
// @Summary Update availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Slot id"
// @Param payload body dto.UpdateSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/availability/slots/{id} [put]
func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.availability.UpdateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slot)
}

// DeleteSlot godoc
// @Summary Delete availability slot
// @Tags Availability
// @Param id path string true "Slot id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/availability/slots/{id} [delete]
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	if err := h.availability.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExceptions godoc
// @Summary List upcoming availability exceptions
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/availability/exceptions [get]
func (h *AvailabilityHandler) ListExceptions(c *gin.Context) {
	items, err := h.availability.UpcomingExceptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// CreateException godoc
// @Summary Create availability exception
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.CreateExceptionRequest true "Exception payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/availability/exceptions [post]
func (h *AvailabilityHandler) CreateException(c *gin.Context) {
	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exception payload"))
		return
	}

	exc, err := h.availability.CreateException(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exc)
}

// DeleteException godoc
// @Summary Delete availability exception
// @Tags Availability
// @Param id path string true "Exception id"
// @Success 204 {object} response.Envelope
// @Router /admin/availability/exceptions/{id} [delete]
func (h *AvailabilityHandler) DeleteException(c *gin.Context) {
	if err := h.availability.DeleteException(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
