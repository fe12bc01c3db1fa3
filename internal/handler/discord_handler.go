package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// DiscordHandler exposes the Discord account linking flow. siteURL is the
// frontend origin the callback redirects back to.
type DiscordHandler struct {
	discord *service.DiscordService
	siteURL string
}

// NewDiscordHandler constructs DiscordHandler.
func NewDiscordHandler(discord *service.DiscordService, siteURL string) *DiscordHandler {
	return &DiscordHandler{discord: discord, siteURL: strings.TrimRight(siteURL, "/")}
}

// Authorize godoc
// @Summary Start the Discord OAuth flow
// @Tags Discord
// @Produce json
// @Param return_to query string false "Path to return to after linking"
// @Success 200 {object} response.Envelope
// @Router /discord/authorize [get]
func (h *DiscordHandler) Authorize(c *gin.Context) {
	authorize, err := h.discord.Authorize(c.Query("return_to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, authorize)
}

// Callback godoc
// @Summary Complete the Discord OAuth flow
// @Tags Discord
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state"
// @Success 302
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /discord/callback [get]
func (h *DiscordHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "code and state are required"))
		return
	}

	link, err := h.discord.Callback(c.Request.Context(), code, state)
	if err != nil {
		response.Error(c, err)
		return
	}
	if link.ReturnTo != "" && strings.HasPrefix(link.ReturnTo, "/") {
		c.Redirect(http.StatusFound, h.siteURL+link.ReturnTo)
		return
	}
	response.OK(c, link)
}
