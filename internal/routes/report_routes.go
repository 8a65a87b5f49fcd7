package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
)

func ReportRoutes(r *gin.Engine, incidents *controllers.IncidentController, notifications *controllers.NotificationController, dashboard *controllers.DashboardController) {
	r.GET("/incidents", incidents.List)
	r.POST("/incidents", incidents.Create)
	r.GET("/notifications", notifications.List)
	r.GET("/dashboard", dashboard.Get)
}
