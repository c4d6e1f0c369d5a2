package handlers

import (
	"net/http"

	"barberbook/services/scheduling"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes the scheduling engine over HTTP.
type ReservationHandler struct {
	Scheduling scheduling.Service
}

// Create books a new reservation for the authenticated client.
func (h *ReservationHandler) Create(c *gin.Context) {
	var input struct {
		ServiceIDs   []string `json:"serviceIds" binding:"required"`
		Date         string   `json:"date" binding:"required"`
		BarbershopID string   `json:"barbershopId"`
		PersonnelID  string   `json:"personnelId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": scheduling.CodeInvalidRequest})
		return
	}

	view, err := h.Scheduling.CreateReservation(c.Request.Context(), scheduling.CreateReservationRequest{
		ClientID:     c.GetString("userID"),
		ServiceIDs:   input.ServiceIDs,
		Date:         input.Date,
		BarbershopID: input.BarbershopID,
		PersonnelID:  input.PersonnelID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// UpdateStatus lets the assigned personnel confirm or cancel a reservation.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status   string `json:"status" binding:"required"`
		ClientID string `json:"clientId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": scheduling.CodeInvalidRequest})
		return
	}

	res, err := h.Scheduling.UpdateStatus(c.Request.Context(), scheduling.StatusUpdateRequest{
		ReservationID: c.Param("id"),
		PersonnelID:   c.GetString("userID"),
		Status:        input.Status,
		ClientID:      input.ClientID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Cancel lets the owning client cancel an upcoming reservation.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	res, err := h.Scheduling.CancelByClient(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Upcoming lists the authenticated client's pending and confirmed
// reservations from now on.
func (h *ReservationHandler) Upcoming(c *gin.Context) {
	list, err := h.Scheduling.UpcomingForClient(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Past lists the authenticated client's reservations before now.
func (h *ReservationHandler) Past(c *gin.Context) {
	list, err := h.Scheduling.PastForClient(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ForPersonnel lists a personnel's reservations, optionally narrowed to
// one day (?date=2006-01-02) and one status (?status=pending).
func (h *ReservationHandler) ForPersonnel(c *gin.Context) {
	list, err := h.Scheduling.ForPersonnelOnDate(
		c.Request.Context(),
		c.Param("id"),
		c.Query("date"),
		c.Query("status"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ClientHistory lists every reservation a client ever made. Personnel and
// owners use it to review a walk-in's record.
func (h *ReservationHandler) ClientHistory(c *gin.Context) {
	list, err := h.Scheduling.ClientHistory(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAll returns every reservation in the system. Admin only.
func (h *ReservationHandler) ListAll(c *gin.Context) {
	list, err := h.Scheduling.AllReservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
