package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/middleware"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// одна физическая связь, иначе пул теряет in-memory базу
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.FileAttachment{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.ChatFileAttachment{},
		&models.TimeLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	database.DB = db
	JWTSecret = testSecret
}

// newTestRouter — та же разводка, что в server.NewRouter.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/auth/signup", Signup)
	r.POST("/api/auth/login", Login)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(testSecret))

	api.GET("/auth/verify", Verify)

	api.GET("/projects", ListProjects)
	api.POST("/projects", middleware.RequireManager(), CreateProject)
	api.GET("/projects/:id", GetProject)
	api.PUT("/projects/:id", middleware.RequireManager(), UpdateProject)
	api.GET("/projects/:id/comments", ListProjectComments)
	api.POST("/projects/:id/comments", AddProjectComment)

	api.GET("/tasks/dashboard", Dashboard)
	api.GET("/tasks", ListTasks)
	api.POST("/tasks", middleware.RequireManager(), CreateTask)
	api.GET("/tasks/project/:projectId", ListTasksByProject)
	api.GET("/tasks/:id", GetTask)
	api.PATCH("/tasks/:id/status", UpdateTaskStatus)
	api.GET("/tasks/:id/comments", ListTaskComments)
	api.POST("/tasks/:id/comments", AddTaskComment)
	api.GET("/tasks/:id/files", ListTaskFiles)
	api.POST("/tasks/:id/files", UploadTaskFile)

	api.GET("/notifications", ListNotifications)
	api.GET("/notifications/unread-count", UnreadNotificationCount)
	api.PATCH("/notifications/mark-all-read", MarkAllNotificationsRead)
	api.PATCH("/notifications/:id/read", MarkNotificationRead)
	api.POST("/notifications", middleware.RequireManager(), CreateNotification)

	api.GET("/users", middleware.RequireManager(), ListUsers)
	api.GET("/users/:id", GetUserProfile)
	api.PUT("/users/:id", UpdateUserProfile)
	api.GET("/users/:id/projects", middleware.RequireManager(), GetUserProjects)
	api.GET("/users/:id/tasks", middleware.RequireManager(), GetUserTasks)

	api.GET("/chat/messages", ListChatMessages)
	api.POST("/chat/messages", CreateChatMessage)
	api.GET("/chat/messages/:id/files", ListChatMessageFiles)
	api.POST("/chat/messages/:id/files", UploadChatMessageFile)

	api.GET("/timelog/user", MyTimeLogs)
	api.GET("/timelog/all", middleware.RequireManager(), AllTimeLogs)

	return r
}

func createTestUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         email,
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := issueToken(user)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func futureDeadline() time.Time {
	return time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
}
