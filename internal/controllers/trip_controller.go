package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"school_transport/internal/services"
)

type TripController struct {
	trips *services.TripService
}

func NewTripController(trips *services.TripService) *TripController {
	return &TripController{trips: trips}
}

func (t *TripController) List(c *gin.Context) {
	trips, err := t.trips.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (t *TripController) ListWithDriver(c *gin.Context) {
	trips, err := t.trips.ListWithDriver(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (t *TripController) Create(c *gin.Context) {
	var body services.CreateTripInput
	if !bindJSON(c, &body) {
		return
	}

	trip, err := t.trips.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (t *TripController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := t.trips.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (t *TripController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body services.UpdateTripInput
	if !bindJSON(c, &body) {
		return
	}

	trip, err := t.trips.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type assignDriverInput struct {
	DriverID uint `json:"driver_id"`
}

// AssignDriver binds a driver to an unassigned trip. Errors use the
// {"message": ...} body existing clients expect.
func (t *TripController) AssignDriver(c *gin.Context) {
	tripID, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var body assignDriverInput
	if err := c.ShouldBindJSON(&body); err != nil || tripID == 0 || body.DriverID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "trip id and driver_id are required"})
		return
	}

	trip, err := t.trips.AssignDriver(c.Request.Context(), uint(tripID), body.DriverID)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Trip not found or already assigned"})
			return
		}
		respondErrorWith(c, "message", err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (t *TripController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := t.trips.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
