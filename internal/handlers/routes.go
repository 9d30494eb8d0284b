package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/services"
)

// Router bundles every handler mounted under /api/v1.
type Router struct {
	Users      *services.UserService
	AdminToken string

	User     *UserHandler
	Job      *JobHandler
	Resume   *ResumeHandler
	Alert    *AlertHandler
	Employer *EmployerHandler
	Admin    *AdminHandler
}

// Register mounts the routes on api.
func (rt *Router) Register(api *gin.RouterGroup) {
	api.GET("/health", HealthCheck)
	api.POST("/users", rt.User.Register)

	authed := api.Group("", Identity(rt.Users))
	{
		authed.GET("/users/me", rt.User.Me)
		authed.GET("/notifications/settings", rt.User.GetSettings)
		authed.PUT("/notifications/settings", rt.User.UpdateSettings)

		authed.GET("/jobs/search", rt.Job.Search)
		authed.GET("/jobs/:id", rt.Job.GetJob)
	}

	student := authed.Group("", RequireRole(models.UserTypeStudent))
	{
		student.POST("/resumes", rt.Resume.Upload)
		student.GET("/resumes/analysis", rt.Resume.Analysis)

		student.GET("/jobs", rt.Job.ListJobs)
		student.GET("/jobs/recommendations", rt.Job.Recommendations)
		student.POST("/jobs/:id/apply", rt.Job.Apply)
		student.GET("/jobs/:id/application", rt.Job.ApplicationStatus)
		student.GET("/applications", rt.Job.MyApplications)
		student.GET("/counseling", rt.Job.Counseling)

		student.GET("/alerts", rt.Alert.List)
		student.POST("/alerts/:id/read", rt.Alert.MarkRead)
		student.DELETE("/alerts/:id", rt.Alert.Delete)
	}

	employer := authed.Group("", RequireRole(models.UserTypeEmployer))
	{
		employer.POST("/jobs", rt.Job.CreateJob)
		employer.GET("/employer/applicants", rt.Employer.Applicants)
		employer.GET("/employer/jobs", rt.Employer.Jobs)
		employer.GET("/employer/jobs/:id/shortlist", rt.Employer.Shortlist)
		employer.GET("/employer/stats", rt.Employer.Stats)
	}

	admin := api.Group("/admin", RequireAdminToken(rt.AdminToken))
	admin.GET("/stats", rt.Admin.Stats)
}
