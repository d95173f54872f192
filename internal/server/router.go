package server

import (
	"net/http"

	"taskhub/internal/config"
	"taskhub/internal/handlers"
	"taskhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handlers.JWTSecret = cfg.JWTSecret

	// AUTH
	r.POST("/api/auth/signup", handlers.Signup)
	r.POST("/api/auth/login", handlers.Login)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))

	api.GET("/auth/verify", handlers.Verify)

	// ПРОЕКТЫ
	api.GET("/projects", handlers.ListProjects)
	api.POST("/projects",
		middleware.RequireManager(),
		handlers.CreateProject,
	)
	api.GET("/projects/:id", handlers.GetProject)
	api.PUT("/projects/:id",
		middleware.RequireManager(),
		handlers.UpdateProject,
	)
	api.GET("/projects/:id/comments", handlers.ListProjectComments)
	api.POST("/projects/:id/comments", handlers.AddProjectComment)

	// ЗАДАЧИ
	api.GET("/tasks/dashboard", handlers.Dashboard)
	api.GET("/tasks", handlers.ListTasks)
	api.POST("/tasks",
		middleware.RequireManager(),
		handlers.CreateTask,
	)
	api.GET("/tasks/project/:projectId", handlers.ListTasksByProject)
	api.GET("/tasks/:id", handlers.GetTask)
	api.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)
	api.GET("/tasks/:id/comments", handlers.ListTaskComments)
	api.POST("/tasks/:id/comments", handlers.AddTaskComment)
	api.GET("/tasks/:id/files", handlers.ListTaskFiles)
	api.POST("/tasks/:id/files", handlers.UploadTaskFile)

	// УВЕДОМЛЕНИЯ
	api.GET("/notifications", handlers.ListNotifications)
	api.GET("/notifications/unread-count", handlers.UnreadNotificationCount)
	api.PATCH("/notifications/mark-all-read", handlers.MarkAllNotificationsRead)
	api.PATCH("/notifications/:id/read", handlers.MarkNotificationRead)
	api.POST("/notifications",
		middleware.RequireManager(),
		handlers.CreateNotification,
	)

	// ПОЛЬЗОВАТЕЛИ
	api.GET("/users",
		middleware.RequireManager(),
		handlers.ListUsers,
	)
	api.GET("/users/:id", handlers.GetUserProfile)
	api.PUT("/users/:id", handlers.UpdateUserProfile)
	api.GET("/users/:id/projects",
		middleware.RequireManager(),
		handlers.GetUserProjects,
	)
	api.GET("/users/:id/tasks",
		middleware.RequireManager(),
		handlers.GetUserTasks,
	)

	// ЧАТ
	api.GET("/chat/messages", handlers.ListChatMessages)
	api.POST("/chat/messages", handlers.CreateChatMessage)
	api.GET("/chat/messages/:id/files", handlers.ListChatMessageFiles)
	api.POST("/chat/messages/:id/files", handlers.UploadChatMessageFile)

	// ЖУРНАЛ ВХОДОВ
	api.GET("/timelog/user", handlers.MyTimeLogs)
	api.GET("/timelog/all",
		middleware.RequireManager(),
		handlers.AllTimeLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
