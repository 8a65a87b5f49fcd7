package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
	"school_transport/internal/models"
)

// UserRoutes exposes account management. Everything but creation is
// restricted to admins.
func UserRoutes(r *gin.Engine, users *controllers.UserController, tokens *middleware.TokenManager) {
	r.POST("/users", tokens.RequireAuth(), users.Create)

	admin := r.Group("/users")
	admin.Use(tokens.RequireRole(models.RoleAdmin))
	{
		admin.GET("", users.List)
		admin.GET("/:id", users.Get)
		admin.PUT("/:id", users.Update)
		admin.DELETE("/:id", users.Delete)
	}
}
