package handlers

import (
	"net/http"
	"strings"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// ФАЙЛЫ ЗАДАЧИ
//

func ListTaskFiles(c *gin.Context) {
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

	var files []models.FileAttachment
	if err := database.DB.
		Where("task_id = ?", id).
		Order("created_at desc").
		Find(&files).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch file attachments")
		return
	}

	fillAttachmentNames(files)

	respond(c, http.StatusOK, "File attachments retrieved successfully", gin.H{
		"files": files,
	})
}

type uploadFileInput struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

func UploadTaskFile(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var in uploadFileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var missing []string
	if in.FileName == "" {
		missing = append(missing, "file_name")
	}
	if in.FileURL == "" {
		missing = append(missing, "file_url")
	}
	if in.FileSize == 0 {
		missing = append(missing, "file_size")
	}
	if in.MimeType == "" {
		missing = append(missing, "mime_type")
	}
	if len(missing) > 0 {
		respondErr(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	// ровно 10 MiB проходит, на байт больше — нет
	if in.FileSize > models.MaxAttachmentSize {
		respondErr(c, http.StatusBadRequest, "File size must not exceed 10MB")
		return
	}

	task, err := loadTask(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Task not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch task")
		return
	}

	// файлы прикрепляет только исполнитель — не создатель и не другой менеджер
	if task.Assignee != user.ID {
		respondErr(c, http.StatusForbidden, "Only the task assignee can upload files")
		return
	}

	file := models.FileAttachment{
		FileName:   in.FileName,
		FileURL:    in.FileURL,
		FileSize:   in.FileSize,
		MimeType:   in.MimeType,
		TaskID:     task.ID,
		UploadedBy: user.ID,
	}
	if err := database.DB.Create(&file).Error; err != nil {
		respondStoreErr(c, err, "Failed to upload file")
		return
	}

	file.UploadedByName = user.Name

	respond(c, http.StatusCreated, "File uploaded successfully", gin.H{
		"file": file,
	})
}
