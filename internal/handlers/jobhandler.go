package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/services"
)

type JobHandler struct {
	JobService      *services.JobService
	MatchingService *services.MatchingService
}

func NewJobHandler(j *services.JobService, m *services.MatchingService) *JobHandler {
	return &JobHandler{JobService: j, MatchingService: m}
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resp, err := h.JobService.CreateJob(c.Request.Context(), *currentUser(c), &req)
	if err != nil {
		respondError(c, "create job", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListJobs is GET /jobs, grouped by how well the caller's resume matches.
func (h *JobHandler) ListJobs(c *gin.Context) {
	resp, err := h.MatchingService.CategorizedJobs(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Search(c *gin.Context) {
	var q dtos.JobSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters: " + err.Error()})
		return
	}
	resp, err := h.MatchingService.Search(c.Request.Context(), *currentUser(c), q)
	if err != nil {
		respondError(c, "search jobs", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Recommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.MatchingService.Recommendations(c.Request.Context(), *currentUser(c), limit)
	if err != nil {
		respondError(c, "rank jobs", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.JobService.GetJob(c.Request.Context(), *currentUser(c), id, c.ClientIP())
	if err != nil {
		respondError(c, "load job", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.JobService.Apply(c.Request.Context(), *currentUser(c), id)
	if err != nil {
		respondError(c, "apply", err)
		return
	}
	status := http.StatusCreated
	if !resp.Success {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (h *JobHandler) ApplicationStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.JobService.ApplicationStatus(c.Request.Context(), *currentUser(c), id)
	if err != nil {
		respondError(c, "check application", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) MyApplications(c *gin.Context) {
	resp, err := h.JobService.MyApplications(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "list applications", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Counseling(c *gin.Context) {
	resp, err := h.MatchingService.Counseling(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "build career counseling", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
