package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (d *DashboardController) Get(c *gin.Context) {
	stats, err := d.dashboard.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"users":                 stats.Users,
		"parents":               stats.Parents,
		"drivers":               stats.Drivers,
		"trips":                 stats.Trips,
		"trips_today":           stats.TripsToday,
		"trips_completed_today": stats.TripsCompletedToday,
		"trips_canceled_today":  stats.TripsCanceledToday,
		"schools":               stats.Schools,
		"incidents":             stats.Incidents,
	})
}
