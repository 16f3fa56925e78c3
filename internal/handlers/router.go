package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/services"
	"github.com/SAP-F-2025/feedback-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	feedbackHandler  *FeedbackHandler
	courseHandler    *CourseHandler
	studentHandler   *StudentHandler
	dashboardHandler *DashboardHandler
	profileHandler   *ProfileHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		feedbackHandler:  NewFeedbackHandler(serviceManager.Feedback(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Export(), logger),
		profileHandler:   NewProfileHandler(serviceManager.Profile(), logger),
		authMiddleware:   NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Authenticated routes
	api := router.Group("/api")
	api.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Course catalog - all authenticated users
		api.GET("/courses", hm.courseHandler.ListCourses)

		// Feedback routes
		feedback := api.Group("/feedback")
		{
			feedback.GET("", hm.feedbackHandler.ListFeedback)
			feedback.POST("", hm.feedbackHandler.CreateFeedback)
			feedback.PUT("/:id", hm.feedbackHandler.UpdateFeedback)
			feedback.DELETE("/:id", hm.feedbackHandler.DeleteFeedback)
		}

		// Profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", hm.profileHandler.GetProfile)
			profile.PUT("", hm.profileHandler.UpdateProfile)
			profile.PUT("/change-password", hm.profileHandler.ChangePassword)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/dashboard", hm.dashboardHandler.GetDashboardStats)
			admin.GET("/export-feedback", hm.dashboardHandler.ExportFeedback)

			admin.GET("/students", hm.studentHandler.ListStudents)
			admin.PUT("/students/:id/block", hm.studentHandler.BlockStudent)
			admin.DELETE("/students/:id", hm.studentHandler.DeleteStudent)

			admin.GET("/courses", hm.courseHandler.ListCourses)
			admin.POST("/courses", hm.courseHandler.CreateCourse)
			admin.PUT("/courses/:id", hm.courseHandler.UpdateCourse)
			admin.DELETE("/courses/:id", hm.courseHandler.DeleteCourse)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "feedback-service",
		})
	})
}
