package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/alerts"
)

type AlertHandler struct {
	Alerts *alerts.Dispatcher
}

func NewAlertHandler(a *alerts.Dispatcher) *AlertHandler {
	return &AlertHandler{Alerts: a}
}

func (h *AlertHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	list, err := h.Alerts.ListAlerts(c.Request.Context(), currentUser(c).ID, limit)
	if err != nil {
		respondError(c, "list alerts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": list})
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.Alerts.MarkRead(c.Request.Context(), id, currentUser(c).ID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlertHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.Alerts.Delete(c.Request.Context(), id, currentUser(c).ID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
