package middleware

import (
	"net/http"
	"strings"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth проверяет bearer-токен и кладёт пользователя в контекст.
// Валидный токен обязан указывать на существующего пользователя,
// иначе запрос отклоняется до бизнес-логики.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			c.Abort()
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(tok, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("CurrentUser", user)
		c.Next()
	}
}

// RequireManager — роль project_manager обязательна.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		uVal, ok := c.Get("CurrentUser")
		user, cast := uVal.(models.User)
		if !ok || !cast || user.Role != models.RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Project manager access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
