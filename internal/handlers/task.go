package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// canViewTask — чтение одной задачи шире, чем списки:
// исполнитель, создатель или любой менеджер.
func canViewTask(user models.User, task models.Task) bool {
	return task.Assignee == user.ID ||
		task.CreatedBy == user.ID ||
		user.Role == models.RoleManager
}

func loadTask(id string) (models.Task, error) {
	var task models.Task
	err := database.DB.First(&task, "id = ?", id).Error
	return task, err
}

//
// СПИСОК ЗАДАЧ
//

// Менеджер видит созданные им задачи, сотрудник — назначенные на него.
// Это два непересекающихся среза, никакого "всего списка" по умолчанию.
func ListTasks(c *gin.Context) {
	user := currentUser(c)

	q := database.DB.Order("created_at desc")
	if user.Role == models.RoleManager {
		q = q.Where("created_by = ?", user.ID)
	} else {
		q = q.Where("assignee = ?", user.ID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch tasks")
		return
	}

	fillTaskNames(tasks)

	respond(c, http.StatusOK, "Tasks retrieved successfully", gin.H{
		"tasks": tasks,
	})
}

// Задачи проекта: владеющий менеджер видит все,
// остальные — только назначенные на себя.
func ListTasksByProject(c *gin.Context) {
	user := currentUser(c)
	projectID := c.Param("projectId")

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusNotFound, "Project not found")
			return
		}
		respondStoreErr(c, err, "Failed to fetch project")
		return
	}

	q := database.DB.Where("project_id = ?", projectID).Order("created_at desc")
	if !(user.Role == models.RoleManager && project.ProjectManager == user.ID) {
		q = q.Where("assignee = ?", user.ID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch project tasks")
		return
	}

	fillTaskNames(tasks)

	respond(c, http.StatusOK, "Project tasks retrieved successfully", gin.H{
		"tasks": tasks,
	})
}

//
// ОДНА ЗАДАЧА
//

func GetTask(c *gin.Context) {
	user := currentUser(c)

	task, err := loadTask(c.Param("id"))
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

	tasks := []models.Task{task}
	fillTaskNames(tasks)

	respond(c, http.StatusOK, "Task retrieved successfully", gin.H{
		"task": tasks[0],
	})
}

//
// СОЗДАНИЕ ЗАДАЧИ
//

type createTaskInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee"`
	ProjectID   string    `json:"project_id"`
	Tags        []string  `json:"tags"`
	Deadline    time.Time `json:"deadline"`
	ImageURL    string    `json:"image_url"`
}

func CreateTask(c *gin.Context) {
	user := currentUser(c)

	var in createTaskInput
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
	if in.Assignee == "" {
		missing = append(missing, "assignee")
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

	var assignee models.User
	if err := database.DB.First(&assignee, "id = ?", in.Assignee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondErr(c, http.StatusBadRequest, "Assignee not found")
			return
		}
		respondStoreErr(c, err, "Failed to create task")
		return
	}

	// проект указывать не обязательно, но если указан —
	// он должен существовать и принадлежать автору запроса
	var projectID *string
	if in.ProjectID != "" {
		var project models.Project
		if err := database.DB.First(&project, "id = ?", in.ProjectID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				respondErr(c, http.StatusBadRequest, "Project not found")
				return
			}
			respondStoreErr(c, err, "Failed to create task")
			return
		}
		if project.ProjectManager != user.ID {
			respondErr(c, http.StatusForbidden, "You can only create tasks for projects you manage")
			return
		}
		projectID = &project.ID
	}

	task := models.Task{
		Name:        in.Name,
		Description: in.Description,
		Assignee:    in.Assignee,
		ProjectID:   projectID,
		Tags:        models.StringList(in.Tags),
		Deadline:    in.Deadline,
		ImageURL:    in.ImageURL,
		Status:      models.StatusNewTask,
		CreatedBy:   user.ID,
	}
	if task.Tags == nil {
		task.Tags = models.StringList{}
	}

	if err := database.DB.Create(&task).Error; err != nil {
		respondStoreErr(c, err, "Failed to create task")
		return
	}

	// уведомление исполнителю — best-effort, сбой не роняет создание задачи
	database.CreateNotification(
		task.Assignee,
		models.NotifyTaskAssigned,
		"New Task Assigned",
		fmt.Sprintf("You have been assigned a new task: %q. Due date: %s.",
			task.Name, task.Deadline.Format("2006-01-02")),
		task.ID,
		models.RelatedTask,
	)

	tasks := []models.Task{task}
	fillTaskNames(tasks)

	respond(c, http.StatusCreated, "Task created successfully", gin.H{
		"task": tasks[0],
	})
}

//
// СМЕНА СТАТУСА
//

type updateTaskStatusInput struct {
	Status models.TaskStatus `json:"status"`
}

func UpdateTaskStatus(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var in updateTaskStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if in.Status == "" {
		respondErr(c, http.StatusBadRequest, "Missing required fields: status")
		return
	}
	if !models.ValidTaskStatus(in.Status) {
		respondErr(c, http.StatusBadRequest,
			"Invalid status. Must be one of: new_task, in_progress, completed, approved")
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

	if err := canChangeTaskStatus(user, task, in.Status); err != nil {
		if err == errNotAuthorized {
			if in.Status == models.StatusApproved {
				respondErr(c, http.StatusForbidden, "Only the project manager who created this task can approve it")
			} else {
				respondErr(c, http.StatusForbidden, "You can only update the status of tasks assigned to you")
			}
			return
		}
		respondErr(c, http.StatusBadRequest,
			fmt.Sprintf("Invalid transition from %s to %s", task.Status, in.Status))
		return
	}

	// одиночный условный UPDATE: ключ — id + наблюдавшийся статус + колонка
	// полномочий (assignee для движения вперёд, created_by для approve).
	// Конкурентная смена статуса даст RowsAffected == 0, частичных
	// состояний не бывает.
	q := database.DB.Model(&models.Task{}).
		Where("id = ? AND status = ?", task.ID, task.Status)
	if in.Status == models.StatusApproved {
		q = q.Where("created_by = ?", user.ID)
	} else {
		q = q.Where("assignee = ?", user.ID)
	}

	res := q.Update("status", in.Status)
	if res.Error != nil {
		respondStoreErr(c, res.Error, "Failed to update task status")
		return
	}
	if res.RowsAffected == 0 {
		// задачу успели перевести параллельным запросом
		respondErr(c, http.StatusBadRequest,
			fmt.Sprintf("Invalid transition from %s to %s", task.Status, in.Status))
		return
	}

	updated, err := loadTask(id)
	if err != nil {
		respondStoreErr(c, err, "Failed to fetch task")
		return
	}
	tasks := []models.Task{updated}
	fillTaskNames(tasks)

	respond(c, http.StatusOK, "Task status updated successfully", gin.H{
		"task": tasks[0],
	})
}
