package handlers

import (
	"net/http"

	"barberbook/services/loyalty"
	"barberbook/services/scheduling"

	"github.com/gin-gonic/gin"
)

// LoyaltyHandler exposes the loyalty ledger to clients.
type LoyaltyHandler struct {
	Loyalty loyalty.Service
}

// Me returns the authenticated user's loyalty balance and history.
func (h *LoyaltyHandler) Me(c *gin.Context) {
	ledger, err := h.Loyalty.ForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, scheduling.NewInternal("failed to load loyalty ledger"))
		return
	}
	c.JSON(http.StatusOK, ledger)
}
