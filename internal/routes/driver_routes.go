package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
	"school_transport/internal/models"
)

func DriverRoutes(r *gin.Engine, drivers *controllers.DriverController, tokens *middleware.TokenManager) {
	driver := r.Group("/drivers")
	{
		driver.GET("", drivers.List)
		driver.POST("", drivers.Create)
		driver.GET("/:id", drivers.Get)
		driver.PUT("/:id", drivers.Update)
		driver.DELETE("/:id", drivers.Delete)
		driver.PATCH("/:id/status", tokens.RequireRole(models.RoleAdmin), drivers.UpdateStatus)
	}
}
