package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
	"school_transport/internal/models"
)

// SchoolRoutes lets anyone read the school list; changes need an admin.
func SchoolRoutes(r *gin.Engine, schools *controllers.SchoolController, tokens *middleware.TokenManager) {
	r.GET("/schools", schools.List)
	r.GET("/schools/:id", schools.Get)

	admin := r.Group("/schools")
	admin.Use(tokens.RequireRole(models.RoleAdmin))
	{
		admin.POST("", schools.Create)
		admin.PUT("/:id", schools.Update)
		admin.DELETE("/:id", schools.Delete)
	}
}
