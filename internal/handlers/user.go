package handlers

import (
	"net/http"
	"strings"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// helper: свой профиль или любой менеджер
func canTouchProfile(user models.User, targetID string) bool {
	return user.ID == targetID || user.Role == models.RoleManager
}

//
// ПРОФИЛЬ
//

func GetUserProfile(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	if !canTouchProfile(user, id) {
		respondErr(c, http.StatusForbidden, "Unauthorized to view this profile")
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch user")
		return
	}

	respond(c, http.StatusOK, "User profile retrieved successfully", gin.H{
		"user": target,
	})
}

type updateProfileInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Bio        *string `json:"bio"`
	AvatarURL  *string `json:"avatar_url"`
}

// Роль в профиле не редактируется: после создания она неизменна.
func UpdateUserProfile(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	if !canTouchProfile(user, id) {
		respondErr(c, http.StatusForbidden, "Unauthorized to edit this profile")
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch user")
		return
	}

	var in updateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			respondErr(c, http.StatusBadRequest, "name must not be empty")
			return
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			respondErr(c, http.StatusBadRequest, "email must not be empty")
			return
		}
		if email != target.Email {
			// уникальность e-mail перепроверяется по всем остальным пользователям
			var count int64
			if err := database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				respondStoreErr(c, err, "Failed to update profile")
				return
			}
			if count > 0 {
				respondErr(c, http.StatusBadRequest, "Email is already in use by another user")
				return
			}
		}
		updates["email"] = email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Department != nil {
		updates["department"] = *in.Department
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&target).Updates(updates).Error; err != nil {
			respondStoreErr(c, err, "Failed to update profile")
			return
		}
	}

	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch user")
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", gin.H{
		"user": target,
	})
}

//
// СПИСОК ПОЛЬЗОВАТЕЛЕЙ (только менеджер, гейт в роутере)
//

func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch users")
		return
	}

	respond(c, http.StatusOK, "Users retrieved successfully", gin.H{
		"users": users,
	})
}

//
// АГРЕГАЦИЯ ПО ПОЛЬЗОВАТЕЛЮ (только менеджер, гейт в роутере)
//

// Проекты пользователя: для менеджера — управляемые им,
// для сотрудника — те, где у него есть задачи.
func GetUserProjects(c *gin.Context) {
	id := c.Param("id")

	var target models.User
	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch user")
		return
	}

	var projects []models.Project
	if target.Role == models.RoleManager {
		if err := database.DB.
			Where("project_manager = ?", id).
			Order("created_at desc").
			Find(&projects).Error; err != nil {
			respondStoreErr(c, err, "Failed to fetch user projects")
			return
		}
	} else {
		var projectIDs []string
		if err := database.DB.Model(&models.Task{}).
			Where("assignee = ? AND project_id IS NOT NULL", id).
			Distinct().
			Pluck("project_id", &projectIDs).Error; err != nil {
			respondStoreErr(c, err, "Failed to fetch user projects")
			return
		}
		if len(projectIDs) > 0 {
			if err := database.DB.
				Where("id IN ?", projectIDs).
				Order("created_at desc").
				Find(&projects).Error; err != nil {
				respondStoreErr(c, err, "Failed to fetch user projects")
				return
			}
		}
	}

	fillProjectNames(projects)

	respond(c, http.StatusOK, "User projects retrieved successfully", gin.H{
		"projects": projects,
	})
}

// Задачи пользователя: для менеджера — созданные им,
// для сотрудника — назначенные на него.
func GetUserTasks(c *gin.Context) {
	id := c.Param("id")

	var target models.User
	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch user")
		return
	}

	q := database.DB.Order("created_at desc")
	if target.Role == models.RoleManager {
		q = q.Where("created_by = ?", id)
	} else {
		q = q.Where("assignee = ?", id)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch user tasks")
		return
	}

	fillTaskNames(tasks)

	respond(c, http.StatusOK, "User tasks retrieved successfully", gin.H{
		"tasks": tasks,
	})
}
