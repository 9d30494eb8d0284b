package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/services"
)

type AdminHandler struct {
	StatsService *services.StatsService
}

func NewAdminHandler(s *services.StatsService) *AdminHandler {
	return &AdminHandler{StatsService: s}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.StatsService.Site(c.Request.Context())
	if err != nil {
		respondError(c, "load site stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
