package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/middleware"
	"school_transport/internal/models"
	"school_transport/internal/services"
)

type AuthController struct {
	users  *services.UserService
	resets *services.ResetService
	tokens *middleware.TokenManager
}

func NewAuthController(users *services.UserService, resets *services.ResetService, tokens *middleware.TokenManager) *AuthController {
	return &AuthController{users: users, resets: resets, tokens: tokens}
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var body loginInput
	if !bindJSON(c, &body) {
		return
	}

	user, err := a.users.Login(c.Request.Context(), body.Email, body.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	case errors.Is(err, services.ErrInactiveUser):
		c.JSON(http.StatusForbidden, gin.H{"error": "User inactive"})
		return
	case errors.Is(err, services.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	case err != nil:
		respondError(c, err)
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerParentInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// RegisterParent is the public sign-up endpoint. It always creates a parent.
func (a *AuthController) RegisterParent(c *gin.Context) {
	var body registerParentInput
	if !bindJSON(c, &body) {
		return
	}

	created, err := a.users.Create(c.Request.Context(), services.CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Password: body.Password,
		Role:     string(models.RoleParent),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created.User)
}

// Me returns the profile of the token's owner.
func (a *AuthController) Me(c *gin.Context) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	profile, err := a.users.Profile(c.Request.Context(), id)
	if err != nil {
		respondErrorWith(c, "message", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the name, email and phone of the account in the path.
// Any authenticated caller may use it.
func (a *AuthController) UpdateProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body services.ProfileInput
	if !bindJSON(c, &body) {
		return
	}

	user, err := a.users.UpdateProfile(c.Request.Context(), id, body)
	if err != nil {
		respondErrorWith(c, "message", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type forgotPasswordInput struct {
	Contact string `json:"contact"`
}

func (a *AuthController) ForgotPassword(c *gin.Context) {
	var body forgotPasswordInput
	if !bindJSON(c, &body) {
		return
	}

	req, err := a.resets.RequestReset(c.Request.Context(), body.Contact)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Reset code sent",
		"user":    req,
	})
}

// verifyOTPInput takes the user id and the code as JSON numbers or strings;
// mobile clients send both.
type verifyOTPInput struct {
	UserID looseUint   `json:"userId"`
	Code   looseString `json:"code"`
}

func (a *AuthController) VerifyOTP(c *gin.Context) {
	var body verifyOTPInput
	if !bindJSON(c, &body) {
		return
	}

	verified, err := a.resets.VerifyCode(c.Request.Context(), uint(body.UserID), string(body.Code))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrExpiredCode) || errors.Is(err, services.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP code"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "OTP code verified",
		"user":    gin.H{"id": verified.UserID, "email": verified.Email},
		"code":    verified.Code,
	})
}
