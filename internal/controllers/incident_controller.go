package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/services"
)

type IncidentController struct {
	incidents *services.IncidentService
}

func NewIncidentController(incidents *services.IncidentService) *IncidentController {
	return &IncidentController{incidents: incidents}
}

// List accepts an optional ?search= filter.
func (i *IncidentController) List(c *gin.Context) {
	incidents, err := i.incidents.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (i *IncidentController) Create(c *gin.Context) {
	var body services.CreateIncidentInput
	if !bindJSON(c, &body) {
		return
	}

	incident, err := i.incidents.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, incident)
}
