package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/services"
)

type ResumeHandler struct {
	ResumeService *services.ResumeService
}

func NewResumeHandler(r *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{ResumeService: r}
}

// Upload is POST /resumes with a multipart "resume" file.
func (h *ResumeHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No resume file provided"})
		return
	}
	if fh.Size > services.MaxResumeSize {
		respondError(c, "upload resume", services.ErrFileTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable upload: " + err.Error()})
		return
	}
	defer f.Close()

	res, err := h.ResumeService.Upload(c.Request.Context(), currentUser(c), fh.Filename, f, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, "upload resume", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ResumeHandler) Analysis(c *gin.Context) {
	a, err := h.ResumeService.Analysis(c.Request.Context(), *currentUser(c))
	if err != nil {
		respondError(c, "analyze resume", err)
		return
	}
	c.JSON(http.StatusOK, a)
}
