package handlers

import (
	"net/http"
	"strconv"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
)

//
// ЖУРНАЛ ВХОДОВ
//

func fillTimeLogNames(logs []models.TimeLog) {
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.UserID)
	}
	users := usersByID(ids)
	for i := range logs {
		if u, ok := users[logs[i].UserID]; ok {
			logs[i].UserName = u.Name
			logs[i].UserEmail = u.Email
		}
	}
}

// Свой журнал доступен всегда.
func MyTimeLogs(c *gin.Context) {
	user := currentUser(c)

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	var logs []models.TimeLog
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("login_timestamp desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch time logs")
		return
	}

	fillTimeLogNames(logs)

	respond(c, http.StatusOK, "Time logs retrieved successfully", gin.H{
		"logs": logs,
	})
}

// Журнал всех пользователей — только менеджер (гейт в роутере).
func AllTimeLogs(c *gin.Context) {
	limit := 100
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	var logs []models.TimeLog
	if err := database.DB.
		Order("login_timestamp desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch time logs")
		return
	}

	fillTimeLogNames(logs)

	respond(c, http.StatusOK, "Time logs retrieved successfully", gin.H{
		"logs": logs,
	})
}
