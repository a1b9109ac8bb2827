package api

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	facade *service.Facade,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(facade)
	progressHandler := NewProgressHandler(facade)
	linkHandler := NewLinkHandler(facade)
	mediaHandler := NewMediaHandler(facade)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Training hierarchy ---
		weekGroup := protected.Group("/weeks")
		{
			weekGroup.POST("", RoleMiddleware(domain.RoleTeacher), planHandler.CreateWeek)
			weekGroup.GET("/:weekId/days", planHandler.ListDays)
			weekGroup.PUT("/:weekId/days", RoleMiddleware(domain.RoleTeacher), planHandler.UpsertDay)
			weekGroup.DELETE("/:weekId/days/:dayId", RoleMiddleware(domain.RoleTeacher), planHandler.DeleteDay)
			weekGroup.POST("/:weekId/publish", RoleMiddleware(domain.RoleTeacher), planHandler.PublishWeek)
			weekGroup.PUT("/:weekId/title", RoleMiddleware(domain.RoleTeacher), planHandler.RenameWeek)
			weekGroup.DELETE("/:weekId", RoleMiddleware(domain.RoleTeacher), planHandler.DeleteWeek)

			// Block demo media
			weekGroup.POST("/:weekId/days/:dayId/blocks/:blockId/media/upload-url",
				RoleMiddleware(domain.RoleTeacher), mediaHandler.RequestUploadURL)
			weekGroup.POST("/:weekId/days/:dayId/blocks/:blockId/media/confirm",
				RoleMiddleware(domain.RoleTeacher), mediaHandler.ConfirmUpload)

			// Completion tracking (students toggle their own days)
			weekGroup.GET("/:weekId/completion", RoleMiddleware(domain.RoleStudent), progressHandler.CompletionMap)
			weekGroup.PUT("/:weekId/days/:dayId/completion", RoleMiddleware(domain.RoleStudent), progressHandler.SetDayCompleted)
		}

		protected.GET("/blocks/:blockId/media/download-url", mediaHandler.DownloadURL)

		// --- Per-student reads ---
		studentGroup := protected.Group("/students/:studentId")
		{
			studentGroup.GET("/weeks", planHandler.ListWeeks)
			studentGroup.GET("/has-weeks", planHandler.HasAnyWeeks)
			studentGroup.GET("/weeks/:weekId/progress", progressHandler.WeekProgress)
			studentGroup.GET("/progress", progressHandler.OverallProgress)
		}

		// --- Relationship lifecycle, student side ---
		linkGroup := protected.Group("/link", RoleMiddleware(domain.RoleStudent))
		{
			linkGroup.GET("/state", linkHandler.LinkState)
			linkGroup.POST("/request", linkHandler.RequestLink)
			linkGroup.POST("/invites/:inviteId/accept", linkHandler.AcceptInvite)
			linkGroup.POST("/invites/:inviteId/decline", linkHandler.DeclineInvite)
		}

		// --- Relationship lifecycle, teacher side ---
		teacherGroup := protected.Group("/teacher", RoleMiddleware(domain.RoleTeacher))
		{
			teacherGroup.GET("/invites", linkHandler.ListInvites)
			teacherGroup.POST("/invites", linkHandler.CreateInvite)
			teacherGroup.POST("/invites/:inviteId/cancel", linkHandler.CancelInvite)
			teacherGroup.GET("/link-requests", linkHandler.ListLinkRequests)
			teacherGroup.POST("/link-requests/:requestId/approve", linkHandler.ApproveLinkRequest)
			teacherGroup.GET("/students", linkHandler.ListStudents)
			teacherGroup.DELETE("/students/:studentId", linkHandler.UnlinkStudent)
		}
	}
}
