package routes

import (
	"github.com/gin-gonic/gin"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
)

func AuthRoutes(r *gin.Engine, auth *controllers.AuthController, tokens *middleware.TokenManager) {
	group := r.Group("/auth")
	{
		group.POST("/login", auth.Login)
		group.POST("/register-parent", auth.RegisterParent)
		group.POST("/forgot-password", auth.ForgotPassword)
		group.POST("/verify-otp", auth.VerifyOTP)

		group.GET("", tokens.RequireAuth(), auth.Me)
		group.PUT("/:id", tokens.RequireAuth(), auth.UpdateProfile)
	}
}
