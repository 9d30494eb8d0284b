package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/services"
)

type EmployerHandler struct {
	EmployerService *services.EmployerService
}

func NewEmployerHandler(e *services.EmployerService) *EmployerHandler {
	return &EmployerHandler{EmployerService: e}
}

func (h *EmployerHandler) Applicants(c *gin.Context) {
	resp, err := h.EmployerService.Applicants(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "list applicants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *EmployerHandler) Shortlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.EmployerService.Shortlist(c.Request.Context(), *currentUser(c), id)
	if err != nil {
		respondError(c, "shortlist applicants", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployerHandler) Jobs(c *gin.Context) {
	resp, err := h.EmployerService.Jobs(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "list employer jobs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *EmployerHandler) Stats(c *gin.Context) {
	resp, err := h.EmployerService.Stats(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "load employer stats", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
