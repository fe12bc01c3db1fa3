package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// FriendCodeHandler exposes friend code endpoints.
type FriendCodeHandler struct {
	codes *service.FriendCodeService
}

// NewFriendCodeHandler constructs FriendCodeHandler.
func NewFriendCodeHandler(codes *service.FriendCodeService) *FriendCodeHandler {
	return &FriendCodeHandler{codes: codes}
}

// Validate godoc
// @Summary Check whether a friend code is usable
// @Tags FriendCodes
// @Accept json
// @Produce json
// @Param payload body dto.ValidateFriendCodeRequest true "Code payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /friend-codes/validate [post]
func (h *FriendCodeHandler) Validate(c *gin.Context) {
	var req dto.ValidateFriendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid friend code payload"))
		return
	}

	code, err := h.codes.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, code)
}

// Redeem godoc
// @Summary Redeem a friend code for a fee-free submission
// @Tags FriendCodes
// @Accept json
// @Produce json
// @Param payload body dto.RedeemFriendCodeRequest true "Redeem payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /friend-codes/redeem [post]
func (h *FriendCodeHandler) Redeem(c *gin.Context) {
	var req dto.RedeemFriendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid friend code payload"))
		return
	}

	submission, err := h.codes.Redeem(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, submission)
}

// Create godoc
// @Summary Create a friend code
// @Tags FriendCodes
// @Accept json
// @Produce json
// @Param payload body dto.CreateFriendCodeRequest true "Friend code payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/friend-codes [post]
func (h *FriendCodeHandler) Create(c *gin.Context) {
	var req dto.CreateFriendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid friend code payload"))
		return
	}

	code, err := h.codes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, code)
}

// List godoc
// @Summary List friend codes
// @Tags FriendCodes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/friend-codes [get]
func (h *FriendCodeHandler) List(c *gin.Context) {
	codes, err := h.codes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, codes)
}

// Update godoc
// @Summary Update a friend code
// @Tags FriendCodes
// @Accept json
// @Produce json
// @Param id path string true "Friend code id"
// @Param payload body dto.UpdateFriendCodeRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/friend-codes/{id} [patch]
func (h *FriendCodeHandler) Update(c *gin.Context) {
	var req dto.UpdateFriendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid friend code payload"))
		return
	}

	code, err := h.codes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, code)
}

// Delete godoc
// @Summary Delete or deactivate a friend code
// @Description Codes with zero redemptions are removed. Redeemed codes are deactivated instead so redemption history stays intact.
// @Tags FriendCodes
// @Produce json
// @Param id path string true "Friend code id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/friend-codes/{id} [delete]
func (h *FriendCodeHandler) Delete(c *gin.Context) {
	result, err := h.codes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
