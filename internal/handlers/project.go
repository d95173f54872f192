package handlers

import (
	"net/http"
	"strings"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// СПИСОК ПРОЕКТОВ
//

// Список виден любому аутентифицированному пользователю;
// сужение — забота клиента, не слоя данных.
func ListProjects(c *gin.Context) {
	var projects []models.Project
	if err := database.DB.Order("created_at desc").Find(&projects).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch projects")
		return
	}

	fillProjectNames(projects)

	respond(c, http.StatusOK, "Projects retrieved successfully", gin.H{
		"projects": projects,
	})
}

//
// СОЗДАНИЕ ПРОЕКТА
//

type createProjectInput struct {
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	Tags                 []string               `json:"tags"`
	ProjectManager       string                 `json:"project_manager"`
	Deadline             time.Time              `json:"deadline"`
	Priority             models.ProjectPriority `json:"priority"`
	ImageURL             string                 `json:"image_url"`
	CompletionPercentage int                    `json:"completion_percentage"`
}

func CreateProject(c *gin.Context) {
	var in createProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.ProjectManager == "" {
		missing = append(missing, "project_manager")
	}
	if in.Deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if len(missing) > 0 {
		respondErr(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if !in.Deadline.After(time.Now()) {
		respondErr(c, http.StatusBadRequest, "Deadline must be in the future")
		return
	}

	if !models.ValidPriority(in.Priority) {
		respondErr(c, http.StatusBadRequest, "Priority must be low, medium, or high")
		return
	}

	if in.CompletionPercentage < 0 || in.CompletionPercentage > 100 {
		respondErr(c, http.StatusBadRequest, "completion_percentage must be between 0 and 100")
		return
	}

	// project_manager — проверяемая ссылка: id обязан существовать и иметь
	// роль менеджера, но может отличаться от автора запроса (делегирование)
	var manager models.User
	err := database.DB.
		Where("id = ? AND role = ?", in.ProjectManager, models.RoleManager).
		First(&manager).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusBadRequest, "Invalid project manager")
			return
		}
		respondStoreErr(c, err, "Failed to create project")
		return
	}

	project := models.Project{
		Name:                 in.Name,
		Description:          in.Description,
		Tags:                 models.StringList(in.Tags),
		ProjectManager:       in.ProjectManager,
		Deadline:             in.Deadline,
		Priority:             in.Priority,
		ImageURL:             in.ImageURL,
		CompletionPercentage: in.CompletionPercentage,
	}
	if project.Tags == nil {
		project.Tags = models.StringList{}
	}

	if err := database.DB.Create(&project).Error; err != nil {
		respondStoreErr(c, err, "Failed to create project")
		return
	}

	project.ProjectManagerName = manager.Name

	respond(c, http.StatusCreated, "Project created successfully", gin.H{
		"project": project,
	})
}

//
// ОДИН ПРОЕКТ
//

func GetProject(c *gin.Context) {
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

	projects := []models.Project{project}
	fillProjectNames(projects)

	respond(c, http.StatusOK, "Project retrieved successfully", gin.H{
		"project": projects[0],
	})
}

//
// ОБНОВЛЕНИЕ ПРОЕКТА
//

type updateProjectInput struct {
	Name                 *string                 `json:"name"`
	Description          *string                 `json:"description"`
	Tags                 *[]string               `json:"tags"`
	Deadline             *time.Time              `json:"deadline"`
	Priority             *models.ProjectPriority `json:"priority"`
	ImageURL             *string                 `json:"image_url"`
	CompletionPercentage *int                    `json:"completion_percentage"`
}

func UpdateProject(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var in updateProjectInput
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
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Tags != nil {
		updates["tags"] = models.StringList(*in.Tags)
	}
	if in.Deadline != nil {
		if !in.Deadline.After(time.Now()) {
			respondErr(c, http.StatusBadRequest, "Deadline must be in the future")
			return
		}
		updates["deadline"] = *in.Deadline
	}
	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			respondErr(c, http.StatusBadRequest, "Priority must be low, medium, or high")
			return
		}
		updates["priority"] = *in.Priority
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.CompletionPercentage != nil {
		if *in.CompletionPercentage < 0 || *in.CompletionPercentage > 100 {
			respondErr(c, http.StatusBadRequest, "completion_percentage must be between 0 and 100")
			return
		}
		updates["completion_percentage"] = *in.CompletionPercentage
	}

	if len(updates) == 0 {
		respondErr(c, http.StatusBadRequest, "No fields to update")
		return
	}

	// условный UPDATE по id + владельцу: чужой проект выглядит как отсутствующий
	res := database.DB.Model(&models.Project{}).
		Where("id = ? AND project_manager = ?", id, user.ID).
		Updates(updates)
	if res.Error != nil {
		respondStoreErr(c, res.Error, "Failed to update project")
		return
	}
	if res.RowsAffected == 0 {
		respondErr(c, http.StatusNotFound, "Project not found or you do not manage it")
		return
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch project")
		return
	}
	projects := []models.Project{project}
	fillProjectNames(projects)

	respond(c, http.StatusOK, "Project updated successfully", gin.H{
		"project": projects[0],
	})
}
