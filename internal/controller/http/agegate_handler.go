package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ageGateCookieName = "age_verified"
	ageGateCookieAge  = 365 * 24 * 60 * 60
)

type AgeGateHandler struct{}

func NewAgeGateHandler() *AgeGateHandler {
	return &AgeGateHandler{}
}

type ageGateRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Confirm godoc
// @Summary      Confirm legal drinking age
// @Description  Sets a one-year cookie remembering the confirmation.
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        request body ageGateRequest true "Confirmation"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /age-gate [post]
func (h *AgeGateHandler) Confirm(c *gin.Context) {
	var req ageGateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirmed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age confirmation is required"})
		return
	}

	c.SetCookie(ageGateCookieName, "true", ageGateCookieAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "age confirmed"})
}

// Status godoc
// @Summary      Check the age-gate cookie
// @Tags         site
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /age-gate [get]
func (h *AgeGateHandler) Status(c *gin.Context) {
	value, err := c.Cookie(ageGateCookieName)
	c.JSON(http.StatusOK, gin.H{"verified": err == nil && value == "true"})
}
