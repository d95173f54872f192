package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// ОБЩИЙ ЧАТ
//

func fillChatNames(messages []models.ChatMessage) {
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.SenderID)
	}
	users := usersByID(ids)
	for i := range messages {
		if u, ok := users[messages[i].SenderID]; ok {
			messages[i].SenderName = u.Name
			messages[i].SenderRole = u.Role
		}
	}
}

// Чтение чата — единственное место, где при недоступной БД отдаём
// заглушку вместо ошибки; на задачи/проекты это не распространяется.
func ListChatMessages(c *gin.Context) {
	limit := 100
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	var messages []models.ChatMessage
	err := database.DB.
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		if storeUnavailable(err) {
			respond(c, http.StatusOK, "Demo messages (database unavailable)", gin.H{
				"messages": []models.ChatMessage{{
					ID:         "demo",
					Content:    "Welcome to the chat! (Demo mode - database temporarily unavailable)",
					SenderID:   "system",
					SenderName: "System",
					SenderRole: models.RoleManager,
					CreatedAt:  time.Now(),
					UpdatedAt:  time.Now(),
				}},
			})
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to fetch chat messages")
		return
	}

	// отдаём от старых к новым
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	fillChatNames(messages)

	respond(c, http.StatusOK, "Chat messages retrieved successfully", gin.H{
		"messages": messages,
	})
}

func CreateChatMessage(c *gin.Context) {
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

	message := models.ChatMessage{
		Content:  in.Content,
		SenderID: user.ID,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		respondStoreErr(c, err, "Failed to create chat message")
		return
	}

	message.SenderName = user.Name
	message.SenderRole = user.Role

	respond(c, http.StatusCreated, "Chat message created successfully", gin.H{
		"chat_message": message,
	})
}

//
// ФАЙЛЫ СООБЩЕНИЙ
//

func ListChatMessageFiles(c *gin.Context) {
	messageID := c.Param("id")

	var message models.ChatMessage
	if err := database.DB.First(&message, "id = ?", messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Chat message not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch chat message")
		return
	}

	var files []models.ChatFileAttachment
	if err := database.DB.
		Where("message_id = ?", messageID).
		Order("created_at asc").
		Find(&files).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch chat file attachments")
		return
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.UploadedBy)
	}
	users := usersByID(ids)
	for i := range files {
		if u, ok := users[files[i].UploadedBy]; ok {
			files[i].UploadedByName = u.Name
		}
	}

	respond(c, http.StatusOK, "Chat file attachments retrieved successfully", gin.H{
		"files": files,
	})
}

func UploadChatMessageFile(c *gin.Context) {
	user := currentUser(c)
	messageID := c.Param("id")

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

	if in.FileSize > models.MaxAttachmentSize {
		respondErr(c, http.StatusBadRequest, "File size must not exceed 10MB")
		return
	}

	var message models.ChatMessage
	if err := database.DB.First(&message, "id = ?", messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Chat message not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch chat message")
		return
	}

	// прикреплять файлы к сообщению может только его автор
	if message.SenderID != user.ID {
		respondErr(c, http.StatusForbidden, "Only the message sender can attach files")
		return
	}

	file := models.ChatFileAttachment{
		FileName:   in.FileName,
		FileURL:    in.FileURL,
		FileSize:   in.FileSize,
		MimeType:   in.MimeType,
		MessageID:  messageID,
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
