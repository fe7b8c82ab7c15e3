package api

import (
	"errors"
	"net/http"

	reqdto "rinkbook/internal/handler/dto/request"
	resdto "rinkbook/internal/handler/dto/response"
	"rinkbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SlotHandler exposes the staff-side slot lifecycle.
type SlotHandler struct {
	slotCommands commands.SlotCommands
}

func NewSlotHandler(slotCommands commands.SlotCommands) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
	}
}

func (h *SlotHandler) ManualReserve(c *gin.Context) {
	slotID, ok := h.parseSlotID(c)
	if !ok {
		return
	}

	var req reqdto.ManualReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	reservationID, err := h.slotCommands.ManualReserve(c.Request.Context(), slotID, req.OrganizationName, req.Notes)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.ManualReserveResponse{ReservationID: reservationID})
}

func (h *SlotHandler) Release(c *gin.Context) {
	slotID, ok := h.parseSlotID(c)
	if !ok {
		return
	}

	if err := h.slotCommands.Release(c.Request.Context(), slotID); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slot released",
	})
}

func (h *SlotHandler) Block(c *gin.Context) {
	slotID, ok := h.parseSlotID(c)
	if !ok {
		return
	}

	if err := h.slotCommands.Block(c.Request.Context(), slotID); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slot blocked",
	})
}

func (h *SlotHandler) Unblock(c *gin.Context) {
	slotID, ok := h.parseSlotID(c)
	if !ok {
		return
	}

	if err := h.slotCommands.Unblock(c.Request.Context(), slotID); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slot unblocked",
	})
}

func (h *SlotHandler) parseSlotID(c *gin.Context) (uuid.UUID, bool) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot id",
		})
		return uuid.Nil, false
	}
	return slotID, true
}

func (h *SlotHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Slot not found",
		})
	case errors.Is(err, commands.ErrSlotsNoLongerAvailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot is not available",
		})
	case errors.Is(err, commands.ErrSlotNotBlocked):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Slot is not blocked",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid reservation details",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
