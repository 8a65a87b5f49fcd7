package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/models"
	"school_transport/internal/services"
)

type DriverController struct {
	drivers *services.DriverService
}

func NewDriverController(drivers *services.DriverService) *DriverController {
	return &DriverController{drivers: drivers}
}

func (d *DriverController) List(c *gin.Context) {
	drivers, err := d.drivers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (d *DriverController) Create(c *gin.Context) {
	var body services.CreateDriverInput
	if !bindJSON(c, &body) {
		return
	}

	driver, err := d.drivers.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (d *DriverController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	driver, err := d.drivers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (d *DriverController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body services.UpdateDriverInput
	if !bindJSON(c, &body) {
		return
	}

	driver, err := d.drivers.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

type driverStatusInput struct {
	Status string `json:"status" binding:"required,driver_status"`
}

// UpdateStatus approves or rejects a driver after document review.
func (d *DriverController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body driverStatusInput
	if !bindJSON(c, &body) {
		return
	}

	driver, err := d.drivers.UpdateStatus(c.Request.Context(), id, models.DriverStatus(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (d *DriverController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := d.drivers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
