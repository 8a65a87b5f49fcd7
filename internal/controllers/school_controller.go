package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/services"
)

type SchoolController struct {
	schools *services.SchoolService
}

func NewSchoolController(schools *services.SchoolService) *SchoolController {
	return &SchoolController{schools: schools}
}

// List returns all partner schools by name.
func (s *SchoolController) List(c *gin.Context) {
	schools, err := s.schools.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// Create registers a new school
func (s *SchoolController) Create(c *gin.Context) {
	var body services.SchoolInput
	if !bindJSON(c, &body) {
		return
	}
	school, err := s.schools.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (s *SchoolController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	school, err := s.schools.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// Update modifies an existing school
func (s *SchoolController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body services.SchoolInput
	if !bindJSON(c, &body) {
		return
	}
	school, err := s.schools.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (s *SchoolController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.schools.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
