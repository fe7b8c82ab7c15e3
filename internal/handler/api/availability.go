package api

import (
	"errors"
	"net/http"
	"time"

	"rinkbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// AvailableSlots lists bookable slots for one surface and one civil day
// in the facility's timezone. Missing date defaults to today.
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	surfaceID, date, ok := h.parseSurfaceAndDate(c)
	if !ok {
		return
	}

	slots, err := h.availabilityQueries.AvailableSlots(c.Request.Context(), surfaceID, date)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// DaySchedule lists every slot including occupied ones; the staff view.
func (h *AvailabilityHandler) DaySchedule(c *gin.Context) {
	surfaceID, date, ok := h.parseSurfaceAndDate(c)
	if !ok {
		return
	}

	slots, err := h.availabilityQueries.DaySchedule(c.Request.Context(), surfaceID, date)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *AvailabilityHandler) parseSurfaceAndDate(c *gin.Context) (uuid.UUID, time.Time, bool) {
	surfaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid surface id",
		})
		return uuid.Nil, time.Time{}, false
	}

	// Zero date means "today"; the query layer resolves it in the
	// facility's timezone, which is unknown here.
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
			return uuid.Nil, time.Time{}, false
		}
	}
	return surfaceID, date, true
}

func (h *AvailabilityHandler) respondQueryError(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrSurfaceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ice surface not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
