package handlers

import (
	"database/sql/driver"
	"errors"
	"net/http"
	"strings"

	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
)

// respond — обёртка над c.JSON с единым конвертом {success, message, ...}.
func respond(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondErr(c *gin.Context, status int, message string) {
	respond(c, status, message, nil)
}

// respondStoreErr — недоступность БД отдаём как 503, чтобы клиент мог
// повторить запрос; остальное — обычная 500.
func respondStoreErr(c *gin.Context, err error, fallback string) {
	if storeUnavailable(err) {
		respondErr(c, http.StatusServiceUnavailable, "Database temporarily unavailable. Please try again later.")
		return
	}
	respondErr(c, http.StatusInternalServerError, fallback)
}

func storeUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connect") || strings.Contains(msg, "connection")
}

// currentUser — пользователь, которого положил middleware.RequireAuth.
func currentUser(c *gin.Context) models.User {
	uVal, _ := c.Get("CurrentUser")
	user, _ := uVal.(models.User)
	return user
}
