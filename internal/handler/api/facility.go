package api

import (
	"errors"
	"net/http"
	"strconv"

	"rinkbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacilityHandler struct {
	facilityQueries queries.FacilityQueries
}

func NewFacilityHandler(facilityQueries queries.FacilityQueries) *FacilityHandler {
	return &FacilityHandler{
		facilityQueries: facilityQueries,
	}
}

// ListFacilities supports ?search= plus optional ?lat=&lng= which order
// results nearest first.
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	search := c.Query("search")

	var lat, lng *float64
	if rawLat, rawLng := c.Query("lat"), c.Query("lng"); rawLat != "" && rawLng != "" {
		parsedLat, errLat := strconv.ParseFloat(rawLat, 64)
		parsedLng, errLng := strconv.ParseFloat(rawLng, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid coordinates",
			})
			return
		}
		lat, lng = &parsedLat, &parsedLng
	}

	facilities, err := h.facilityQueries.ListFacilities(c.Request.Context(), search, lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

func (h *FacilityHandler) GetFacility(c *gin.Context) {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid facility id",
		})
		return
	}

	facility, err := h.facilityQueries.GetFacility(c.Request.Context(), facilityID)
	if err != nil {
		if errors.Is(err, queries.ErrFacilityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Facility not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, facility)
}
