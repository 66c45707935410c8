package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Daily brief
		api.GET("/brief/today", h.briefHandler.GetTodayBrief)

		// Email routes
		api.GET("/emails", h.emailHandler.GetEmails)
		email := api.Group("/email")
		{
			email.POST("/draft", h.emailHandler.GenerateDraft)
			email.POST("/send", h.emailHandler.SendEmail)
		}

		// Calendar routes
		api.GET("/calendar/today", h.calendarHandler.GetTodayEvents)

		// Settings routes
		api.GET("/settings", h.settingsHandler.GetSettings)
		api.POST("/settings", h.settingsHandler.UpdateSettings)

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.PATCH("/:id", h.taskHandler.UpdateTaskStatus)
			tasks.POST("/from-email", h.trelloHandler.CreateFromEmail)
			tasks.POST("/from-event", h.trelloHandler.CreateFromEvent)
		}

		// Trello routes
		trelloGroup := api.Group("/trello")
		{
			trelloGroup.GET("/boards", h.trelloHandler.GetBoards)
			trelloGroup.GET("/boards/:boardId/lists", h.trelloHandler.GetBoardLists)
			trelloGroup.POST("/cards", h.trelloHandler.CreateCard)
			trelloGroup.PATCH("/cards/:cardId", h.trelloHandler.UpdateCard)
		}

		// OAuth routes
		oauth := api.Group("/oauth")
		{
			oauth.GET("/authorize", h.oauthHandler.Authorize)
			oauth.GET("/callback", h.oauthHandler.Callback)
		}
	}
}
