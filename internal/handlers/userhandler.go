package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/alerts"
	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
	Alerts      *alerts.Dispatcher
}

func NewUserHandler(u *services.UserService, a *alerts.Dispatcher) *UserHandler {
	return &UserHandler{UserService: u, Alerts: a}
}

// Register is POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "register user", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, h.UserService.Profile(currentUser(c)))
}

func (h *UserHandler) GetSettings(c *gin.Context) {
	user := currentUser(c)
	recent, err := h.Alerts.ListAlerts(c.Request.Context(), user.ID, 10)
	if err != nil {
		respondError(c, "load alerts", err)
		return
	}
	c.JSON(http.StatusOK, dtos.NotificationSettingsResponse{
		Settings:     h.UserService.Settings(user),
		RecentAlerts: recent,
	})
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req dtos.NotificationSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	settings, err := h.UserService.UpdateSettings(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, "update settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}
