package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_transport/internal/services"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (n *NotificationController) List(c *gin.Context) {
	items, err := n.notifications.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
