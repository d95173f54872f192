package handlers

import (
	"net/http"
	"strings"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Отдельных прав на комментарии нет: кто читает родителя, тот и комментирует.

func listComments(c *gin.Context, relatedID string, relatedType models.RelatedType) {
	var comments []models.Comment
	err := database.DB.
		Where("related_id = ? AND related_type = ?", relatedID, relatedType).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		respondStoreErr(c, err, "Failed to fetch comments")
		return
	}

	fillCommentNames(comments)

	respond(c, http.StatusOK, "Comments retrieved successfully", gin.H{
		"comments": comments,
	})
}

func addComment(c *gin.Context, relatedID string, relatedType models.RelatedType) {
	user := currentUser(c)

	var in struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		respondErr(c, http.StatusBadRequest, "Missing required fields: content")
		return
	}

	comment := models.Comment{
		Content:     in.Content,
		AuthorID:    user.ID,
		RelatedID:   relatedID,
		RelatedType: relatedType,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		respondStoreErr(c, err, "Failed to add comment")
		return
	}

	comment.AuthorName = user.Name

	respond(c, http.StatusCreated, "Comment added successfully", gin.H{
		"comment": comment,
	})
}

//
// КОММЕНТАРИИ ПРОЕКТА
//

func ListProjectComments(c *gin.Context) {
	id := c.Param("id")

	var project models.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Project not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch project")
		return
	}

	listComments(c, id, models.RelatedProject)
}

func AddProjectComment(c *gin.Context) {
	id := c.Param("id")

	var project models.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Project not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch project")
		return
	}

	addComment(c, id, models.RelatedProject)
}

//
// КОММЕНТАРИИ ЗАДАЧИ
//

func ListTaskComments(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	task, err := loadTask(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Task not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch task")
		return
	}

	if !canViewTask(user, task) {
		respondErr(c, http.StatusForbidden, "Access denied")
		return
	}

	listComments(c, id, models.RelatedTask)
}

func AddTaskComment(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	task, err := loadTask(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Task not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch task")
		return
	}

	if !canViewTask(user, task) {
		respondErr(c, http.StatusForbidden, "Access denied")
		return
	}

	addComment(c, id, models.RelatedTask)
}
