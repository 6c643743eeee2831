package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errInstall = "failed to start thermostat pairing"
	errPair    = "failed to pair thermostat"
)

// @Summary      Start pairing
// @Description  Requests a pin to enter in the thermostat provider portal, plus the code for /install/2
// @Tags         install
// @Produce      json
// @Success      200  {object}  ecobee.PinResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /install/1 [get]
// @Security     BearerAuth
func (h *Handler) install1(c *gin.Context) {
	pin, err := h.services.Install(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, statusFor(err), errInstall, "install_authorize_failed", err)
		return
	}
	c.JSON(http.StatusOK, pin)
}

// @Summary      Finish pairing
// @Description  Exchanges the code from /install/1 for a thermostat token and stores it
// @Tags         install
// @Produce      json
// @Param        code  query     string  true  "Authorization code returned by /install/1"
// @Success      200   {object}  map[string]interface{}  "paired, expires"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /install/2 [get]
// @Security     BearerAuth
func (h *Handler) install2(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	tok, err := h.services.Pair(c.Request.Context(), code)
	if err != nil {
		msg := errPair
		if statusFor(err) == http.StatusBadRequest {
			msg = err.Error()
		}
		h.logAndJSONError(c, statusFor(err), msg, "install_pair_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paired": true, "expires": tok.Expires})
}
