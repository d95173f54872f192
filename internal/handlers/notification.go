package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
)

//
// УВЕДОМЛЕНИЯ
//

// Чистый pull-интерфейс: клиент сам решает, как часто опрашивать.
// Параметр since (RFC3339) отдаёт только уведомления новее чекпоинта.
func ListNotifications(c *gin.Context) {
	user := currentUser(c)

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	q := database.DB.Where("user_id = ?", user.ID)
	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondErr(c, http.StatusBadRequest, "Invalid since parameter, expected RFC3339 timestamp")
			return
		}
		q = q.Where("created_at > ?", since)
	}

	var notifications []models.Notification
	if err := q.Order("created_at desc").Limit(limit).Find(&notifications).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch notifications")
		return
	}

	var unread int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch notifications")
		return
	}

	respond(c, http.StatusOK, "Notifications retrieved successfully", gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func UnreadNotificationCount(c *gin.Context) {
	user := currentUser(c)

	var unread int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch unread count")
		return
	}

	respond(c, http.StatusOK, "Unread count retrieved successfully", gin.H{
		"unread_count": unread,
	})
}

func MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, user.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		respondStoreErr(c, res.Error, "Failed to mark notification as read")
		return
	}
	if res.RowsAffected == 0 {
		respondErr(c, http.StatusNotFound, "Notification not found or already read")
		return
	}

	respond(c, http.StatusOK, "Notification marked as read", nil)
}

func MarkAllNotificationsRead(c *gin.Context) {
	user := currentUser(c)

	res := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		respondStoreErr(c, res.Error, "Failed to mark notifications as read")
		return
	}

	respond(c, http.StatusOK, "All notifications marked as read", gin.H{
		"updated_count": res.RowsAffected,
	})
}

//
// СОЗДАНИЕ УВЕДОМЛЕНИЯ (только менеджер)
//

type createNotificationInput struct {
	UserID      string                  `json:"user_id"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	RelatedID   string                  `json:"related_id"`
	RelatedType models.RelatedType      `json:"related_type"`
}

func CreateNotification(c *gin.Context) {
	var in createNotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var missing []string
	if in.UserID == "" {
		missing = append(missing, "user_id")
	}
	if in.Type == "" {
		missing = append(missing, "type")
	}
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		respondErr(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if !models.ValidNotificationType(in.Type) {
		respondErr(c, http.StatusBadRequest, "Invalid notification type")
		return
	}
	if in.RelatedType != "" && !models.ValidRelatedType(in.RelatedType) {
		respondErr(c, http.StatusBadRequest, "related_type must be project or task")
		return
	}

	notification := models.Notification{
		UserID:      in.UserID,
		Type:        in.Type,
		Title:       in.Title,
		Message:     in.Message,
		RelatedID:   in.RelatedID,
		RelatedType: in.RelatedType,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		respondStoreErr(c, err, "Failed to create notification")
		return
	}

	respond(c, http.StatusCreated, "Notification created successfully", gin.H{
		"notification": notification,
	})
}
