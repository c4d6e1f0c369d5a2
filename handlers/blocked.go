package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"barberbook/services/scheduling"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const blockedDayCacheTTL = 5 * time.Minute

// BlockedSlotHandler manages personnel unavailability windows. Day views
// are cached in Redis and invalidated whenever the day changes.
type BlockedSlotHandler struct {
	Scheduling scheduling.Service
	Cache      *redis.Client
}

func blockedDayCacheKey(personnelID, barbershopID, date string) string {
	return fmt.Sprintf("blocked_day:%s:%s:%s", personnelID, barbershopID, date)
}

func (h *BlockedSlotHandler) invalidateDay(ctx context.Context, personnelID, barbershopID, date string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(ctx, blockedDayCacheKey(personnelID, barbershopID, date)).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate blocked-day cache", zap.Error(err))
	}
}

// Block marks a time window unavailable for the authenticated personnel.
func (h *BlockedSlotHandler) Block(c *gin.Context) {
	var input struct {
		BarbershopID    string `json:"barbershopId" binding:"required"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		DurationMinutes int    `json:"durationMinutes"`
		IsMonthly       bool   `json:"isMonthly"`
		IsAdminBlock    bool   `json:"isAdminBlock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": scheduling.CodeInvalidRequest})
		return
	}

	slot, err := h.Scheduling.BlockSlot(c.Request.Context(), scheduling.BlockSlotRequest{
		PersonnelID:     c.GetString("userID"),
		BarbershopID:    input.BarbershopID,
		Date:            input.Date,
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		IsMonthly:       input.IsMonthly,
		IsAdminBlock:    input.IsAdminBlock,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDay(c.Request.Context(), slot.PersonnelID, slot.BarbershopID, input.Date)
	c.JSON(http.StatusCreated, slot)
}

// Unblock removes a previously blocked slot identified by its start time.
func (h *BlockedSlotHandler) Unblock(c *gin.Context) {
	var input struct {
		BarbershopID string `json:"barbershopId" binding:"required"`
		Date         string `json:"date" binding:"required"`
		Time         string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": scheduling.CodeInvalidRequest})
		return
	}

	personnelID := c.GetString("userID")
	if err := h.Scheduling.UnblockSlot(c.Request.Context(), scheduling.UnblockSlotRequest{
		PersonnelID:  personnelID,
		BarbershopID: input.BarbershopID,
		Date:         input.Date,
		Time:         input.Time,
	}); err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDay(c.Request.Context(), personnelID, input.BarbershopID, input.Date)
	c.JSON(http.StatusOK, gin.H{"message": "blocked slot removed"})
}

// Day lists the authenticated personnel's blocked slots for one calendar
// day (?barbershopId=...&date=2006-01-02).
func (h *BlockedSlotHandler) Day(c *gin.Context) {
	personnelID := c.GetString("userID")
	barbershopID := c.Query("barbershopId")
	date := c.Query("date")
	ctx := c.Request.Context()

	key := blockedDayCacheKey(personnelID, barbershopID, date)
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		} else if err != redis.Nil {
			utils.GetLogger().Warn("Blocked-day cache read failed", zap.Error(err))
		}
	}

	slots, err := h.Scheduling.BlockedSlotsForDay(ctx, personnelID, barbershopID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Cache != nil {
		if payload, err := json.Marshal(slots); err == nil {
			if err := h.Cache.Set(ctx, key, payload, blockedDayCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Blocked-day cache write failed", zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, slots)
}
