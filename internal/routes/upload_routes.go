package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
)

func UploadRoutes(r *gin.Engine, uploads *controllers.UploadController, tokens *middleware.TokenManager) {
	r.GET("/uploads/*filepath", uploads.Serve)
	r.POST("/uploads", tokens.RequireAuth(), uploads.Upload)
}
