package handlers

import (
	"net/http"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"

	"github.com/gin-gonic/gin"
)

type projectWorkload struct {
	ProjectID          string                 `json:"project_id"`
	ProjectName        string                 `json:"project_name"`
	TotalTasks         int                    `json:"total_tasks"`
	CompletedTasks     int                    `json:"completed_tasks"`
	ProgressPercentage int                    `json:"progress_percentage"`
	Deadline           time.Time              `json:"deadline"`
	Priority           models.ProjectPriority `json:"priority"`
}

// Сводка по роли: менеджер — свои созданные задачи и управляемые проекты,
// сотрудник — назначенные задачи и проекты, где они есть.
func Dashboard(c *gin.Context) {
	user := currentUser(c)

	q := database.DB.Order("created_at desc")
	if user.Role == models.RoleManager {
		q = q.Where("created_by = ?", user.ID)
	} else {
		q = q.Where("assignee = ?", user.ID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		respondStoreErr(c, err, "Failed to fetch dashboard data")
		return
	}

	var projects []models.Project
	if user.Role == models.RoleManager {
		if err := database.DB.
			Where("project_manager = ?", user.ID).
			Find(&projects).Error; err != nil {
			respondStoreErr(c, err, "Failed to fetch dashboard data")
			return
		}
	} else {
		seen := map[string]bool{}
		var ids []string
		for _, t := range tasks {
			if t.ProjectID != nil && !seen[*t.ProjectID] {
				seen[*t.ProjectID] = true
				ids = append(ids, *t.ProjectID)
			}
		}
		if len(ids) > 0 {
			if err := database.DB.
				Where("id IN ?", ids).
				Find(&projects).Error; err != nil {
				respondStoreErr(c, err, "Failed to fetch dashboard data")
				return
			}
		}
	}

	var completed, inProgress, newTasks int
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted, models.StatusApproved:
			completed++
		case models.StatusInProgress:
			inProgress++
		case models.StatusNewTask:
			newTasks++
		}
	}

	// задачи на сегодня = дедлайн не позже конца текущего дня (включая просроченные)
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	var todayTasks []models.Task
	for _, t := range tasks {
		if !t.Deadline.After(endOfDay) {
			todayTasks = append(todayTasks, t)
		}
	}

	recent := tasks
	if len(recent) > 10 {
		recent = recent[:10]
	}

	workload := make([]projectWorkload, 0, len(projects))
	for _, p := range projects {
		var total, done int
		for _, t := range tasks {
			if t.ProjectID == nil || *t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == models.StatusCompleted || t.Status == models.StatusApproved {
				done++
			}
		}
		progress := 0
		if total > 0 {
			progress = int(float64(done)/float64(total)*100 + 0.5)
		}
		workload = append(workload, projectWorkload{
			ProjectID:          p.ID,
			ProjectName:        p.Name,
			TotalTasks:         total,
			CompletedTasks:     done,
			ProgressPercentage: progress,
			Deadline:           p.Deadline,
			Priority:           p.Priority,
		})
	}

	fillTaskNames(todayTasks)
	fillTaskNames(recent)

	respond(c, http.StatusOK, "Dashboard data retrieved successfully", gin.H{
		"data": gin.H{
			"user_role": user.Role,
			"tasks": gin.H{
				"total":        len(tasks),
				"completed":    completed,
				"in_progress":  inProgress,
				"new_tasks":    newTasks,
				"today_tasks":  todayTasks,
				"recent_tasks": recent,
			},
			"projects": gin.H{
				"total":    len(projects),
				"workload": workload,
			},
		},
	})
}
