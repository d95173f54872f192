package handlers

import (
	"net/http"
	"strings"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/middleware"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTSecret задаётся при сборке роутера (и в тестах).
var JWTSecret string

const tokenTTL = 24 * time.Hour

func issueToken(user models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(JWTSecret))
}

type signupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func Signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	var missing []string
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		respondErr(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if len(in.Password) < 6 {
		respondErr(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	// роль — закрытый двухвариантный enum; пустая = employee
	role := models.UserRole(in.Role)
	if in.Role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleManager {
		respondErr(c, http.StatusBadRequest, "Invalid role: must be employee or project_manager")
		return
	}

	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("email = ?", in.Email).
		Count(&count).Error; err != nil {
		respondStoreErr(c, err, "Failed to create user")
		return
	}
	if count > 0 {
		respondErr(c, http.StatusBadRequest, "Email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		respondStoreErr(c, err, "Failed to create user")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	var user models.User
	if err := database.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		respondErr(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		respondErr(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	// журнал входов пишется best-effort, логин не роняем
	database.CreateTimeLog(user.ID, c.ClientIP(), c.Request.UserAgent())

	respond(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Verify — валидный токен уже проверен middleware, просто возвращаем пользователя.
func Verify(c *gin.Context) {
	respond(c, http.StatusOK, "Token is valid", gin.H{
		"user": currentUser(c),
	})
}
