package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
)

func TripRoutes(r *gin.Engine, trips *controllers.TripController) {
	trip := r.Group("/trips")
	{
		trip.GET("", trips.List)
		trip.POST("", trips.Create)
		trip.GET("/with-driver", trips.ListWithDriver)
		trip.GET("/:id", trips.Get)
		trip.PUT("/:id", trips.Update)
		trip.PATCH("/:id", trips.AssignDriver)
		trip.DELETE("/:id", trips.Delete)
	}
}
