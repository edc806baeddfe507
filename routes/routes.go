package routes

import (
	"exam-data-api/controllers"
	"exam-data-api/middleware"
	"exam-data-api/models"
	"exam-data-api/store"

	"github.com/gin-gonic/gin"
)

// Controllers collects the wired controller set for route registration.
type Controllers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Exams       *controllers.ExamController
	Assignments *controllers.AssignmentController
	AutoFill    *controllers.AutoFillController
	Submissions *controllers.SubmissionController
	Versions    *controllers.VersionHistoryController
	Dashboard   *controllers.DashboardController
}

// SetupRoutes registers the API under /api/v1.
func SetupRoutes(router *gin.Engine, st store.Store, ctrl Controllers) {
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", ctrl.Auth.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Exam Data API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(st))
		{
			protected.GET("/profile", ctrl.Auth.Profile)

			// Catalog reference data (all authenticated users)
			protected.GET("/exam-options", ctrl.Exams.Options)
			protected.GET("/auto-fill/:examId", ctrl.AutoFill.Get)

			// User management (admin only)
			users := protected.Group("/users", middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", ctrl.Users.List)
				users.POST("", ctrl.Users.Create)
				users.PUT("/:id", ctrl.Users.Update)
				users.DELETE("/:id", ctrl.Users.Delete)
			}

			// Exam catalog management
			exams := protected.Group("/exams")
			{
				exams.GET("", ctrl.Exams.List)
				exams.POST("", middleware.RequireRole(models.RoleAdmin), ctrl.Exams.Create)
				exams.PUT("/:id", middleware.RequireRole(models.RoleAdmin), ctrl.Exams.Update)
				exams.POST("/:id/sub-exams", middleware.RequireRole(models.RoleAdmin), ctrl.Exams.AddSubExam)
			}

			// Assignments
			assignments := protected.Group("/assignments")
			{
				assignments.GET("", ctrl.Assignments.List)
				assignments.GET("/:id", ctrl.Assignments.Get)
				assignments.GET("/:id/submissions", ctrl.Assignments.Submissions)

				assignments.POST("", middleware.RequireRole(models.RoleAdmin), ctrl.Assignments.Create)
				assignments.PUT("/:id/status", ctrl.Assignments.UpdateStatus)
				assignments.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), ctrl.Assignments.Delete)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", middleware.RequireRole(models.RoleIntern, models.RoleAdmin), ctrl.Submissions.Submit)
				submissions.GET("/:id", ctrl.Submissions.Get)

				// Review operations (admin only)
				submissions.GET("", middleware.RequireRole(models.RoleAdmin), ctrl.Submissions.List)
				submissions.PUT("/:id", middleware.RequireRole(models.RoleAdmin), ctrl.Submissions.Update)
				submissions.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), ctrl.Submissions.Approve)
				submissions.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin), ctrl.Submissions.Reject)

				// Version history
				submissions.GET("/:id/versions", middleware.RequireRole(models.RoleAdmin), ctrl.Versions.History)
			}
			protected.GET("/versions/compare", middleware.RequireRole(models.RoleAdmin), ctrl.Versions.Compare)

			// Reporting (admin only)
			admin := protected.Group("", middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/dashboard/stats", ctrl.Dashboard.Stats)
				admin.GET("/dashboard/quality", ctrl.Dashboard.QualityStats)
				admin.GET("/export/training-data", ctrl.Dashboard.Export)
				admin.GET("/logs", ctrl.Dashboard.Logs)
			}
		}
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
