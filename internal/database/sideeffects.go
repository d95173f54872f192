package database

import (
	"log"

	"taskhub/internal/models"
)

// Побочные записи, которые не должны ронять основную операцию.
// Ошибки логируются и не возвращаются вызывающему.

// CreateNotification — запись уведомления (например, при назначении задачи).
func CreateNotification(userID string, ntype models.NotificationType, title, message string, relatedID string, relatedType models.RelatedType) {
	if DB == nil {
		return
	}
	record := models.Notification{
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		RelatedType: relatedType,
	}
	if err := DB.Create(&record).Error; err != nil {
		log.Printf("failed to create notification for user %s: %v", userID, err)
	}
}

// CreateTimeLog — запись в журнал входов при логине.
func CreateTimeLog(userID, ip, userAgent string) {
	if DB == nil {
		return
	}
	record := models.TimeLog{
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := DB.Create(&record).Error; err != nil {
		log.Printf("failed to create time log for user %s: %v", userID, err)
	}
}
