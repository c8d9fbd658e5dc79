package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/handlers"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Projects   *handlers.ProjectHandler
	Skills     *handlers.SkillHandler
	Experience *handlers.ExperienceHandler
	Contact    *handlers.ContactHandler
	Settings   *handlers.SettingsHandler
	Plans      *handlers.PlanHandler
	Phases     *handlers.PhaseHandler
	Tasks      *handlers.TaskHandler
	Comments   *handlers.CommentHandler
}

// SetupRoutes registers every endpoint; requireAuth guards admin-only routes.
func SetupRoutes(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) *gin.Engine {
	// ---- public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/admin/login", h.Auth.Login)

	r.GET("/projects", h.Projects.List)
	r.GET("/projects/:id", h.Projects.GetByID)
	r.GET("/skills", h.Skills.List)
	r.GET("/skills/:id", h.Skills.GetByID)
	r.GET("/experiences", h.Experience.List)
	r.GET("/experiences/:id", h.Experience.GetByID)

	r.POST("/contact", h.Contact.Submit)

	r.GET("/settings", h.Settings.GetSite)
	r.GET("/contact-settings", h.Settings.GetContact)
	r.GET("/ws/settings", h.Settings.Stream)

	// learning tracker, read-only
	r.GET("/plans", h.Plans.List)
	r.GET("/plans/:id", h.Plans.GetByID)
	r.GET("/plans/:id/stats", h.Plans.Stats)
	r.GET("/plans/:id/phases", h.Plans.Phases)
	r.GET("/plans/:id/tasks", h.Plans.Tasks)
	r.GET("/plans/:id/report.pdf", h.Plans.ReportPDF)
	r.GET("/plans/:id/timelogs.csv", h.Plans.TimeLogsCSV)
	r.GET("/tasks/:id", h.Tasks.GetByID)
	r.GET("/tasks/:id/timer/active", h.Tasks.ActiveTimer)
	r.GET("/tasks/:id/timelogs", h.Tasks.TimeLogs)
	r.GET("/tasks/:id/comments", h.Tasks.ListComments)

	// ---- protected
	admin := r.Group("/", requireAuth)

	admin.GET("/admin/verify", h.Auth.Verify)

	admin.POST("/projects", h.Projects.Create)
	admin.PUT("/projects/:id", h.Projects.Update)
	admin.DELETE("/projects/:id", h.Projects.Delete)

	admin.POST("/skills", h.Skills.Create)
	admin.PUT("/skills/:id", h.Skills.Update)
	admin.DELETE("/skills/:id", h.Skills.Delete)

	admin.POST("/experiences", h.Experience.Create)
	admin.PUT("/experiences/:id", h.Experience.Update)
	admin.DELETE("/experiences/:id", h.Experience.Delete)

	admin.GET("/contact", h.Contact.List)
	admin.GET("/contact/threads", h.Contact.Threads)
	admin.GET("/contact/stats", h.Contact.Stats)
	admin.POST("/contact/:id/reply", h.Contact.Reply)
	admin.DELETE("/contact/:id", h.Contact.Delete)

	admin.PUT("/settings", h.Settings.UpdateSite)
	admin.PUT("/contact-settings", h.Settings.UpdateContact)

	// LEARNING
	plans := admin.Group("/plans")
	{
		plans.POST("", h.Plans.Create)
		plans.PUT("/:id", h.Plans.Update)
		plans.DELETE("/:id", h.Plans.Delete)
	}

	phases := admin.Group("/phases")
	{
		phases.POST("", h.Phases.Create)
		phases.PUT("/:id", h.Phases.Update)
		phases.DELETE("/:id", h.Phases.Delete)
	}

	tasks := admin.Group("/tasks")
	{
		tasks.POST("", h.Tasks.Create)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.DELETE("/:id", h.Tasks.Delete)
		tasks.POST("/:id/timer/start", h.Tasks.StartTimer)
		tasks.POST("/:id/timer/stop", h.Tasks.StopTimer)
		tasks.POST("/:id/comments", h.Tasks.AddComment)
	}

	comments := admin.Group("/comments")
	{
		comments.PUT("/:id", h.Comments.Update)
		comments.DELETE("/:id", h.Comments.Delete)
	}

	return r
}
