package handlers

import (
	"net/http"
	"testing"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/models"
)

func TestDashboardCounters(t *testing.T) {
	r := newTestRouter(t)

	manager := createTestUser(t, "mgr@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)

	project := models.Project{
		Name:           "Portal",
		Description:    "d",
		ProjectManager: manager.ID,
		Deadline:       futureDeadline(),
		Priority:       models.PriorityHigh,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	newTask := func(status models.TaskStatus, deadline time.Time) {
		task := models.Task{
			Name:        "t",
			Description: "d",
			Assignee:    employee.ID,
			ProjectID:   &project.ID,
			CreatedBy:   manager.ID,
			Deadline:    deadline,
			Status:      status,
		}
		if err := database.DB.Create(&task).Error; err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	newTask(models.StatusNewTask, futureDeadline())
	newTask(models.StatusInProgress, time.Now().Add(-time.Hour)) // просрочена
	newTask(models.StatusCompleted, futureDeadline())
	newTask(models.StatusApproved, futureDeadline())

	w := doRequest(t, r, "GET", "/api/tasks/dashboard", tokenFor(t, manager), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	tasks := data["tasks"].(map[string]interface{})

	if tasks["total"] != float64(4) {
		t.Errorf("total: expected 4, got %v", tasks["total"])
	}
	// completed объединяет completed и approved
	if tasks["completed"] != float64(2) {
		t.Errorf("completed: expected 2, got %v", tasks["completed"])
	}
	if tasks["in_progress"] != float64(1) {
		t.Errorf("in_progress: expected 1, got %v", tasks["in_progress"])
	}
	if tasks["new_tasks"] != float64(1) {
		t.Errorf("new_tasks: expected 1, got %v", tasks["new_tasks"])
	}

	today := tasks["today_tasks"].([]interface{})
	if len(today) != 1 {
		t.Errorf("today_tasks: expected 1 (only the overdue one), got %d", len(today))
	}

	projects := data["projects"].(map[string]interface{})
	if projects["total"] != float64(1) {
		t.Errorf("projects total: expected 1, got %v", projects["total"])
	}
	workload := projects["workload"].([]interface{})
	if len(workload) != 1 {
		t.Fatalf("workload: expected 1 row, got %d", len(workload))
	}
	row := workload[0].(map[string]interface{})
	if row["total_tasks"] != float64(4) || row["completed_tasks"] != float64(2) {
		t.Errorf("workload counts wrong: %v", row)
	}
	if row["progress_percentage"] != float64(50) {
		t.Errorf("progress: expected 50, got %v", row["progress_percentage"])
	}
}

func TestDashboardRoleScoping(t *testing.T) {
	r := newTestRouter(t)

	manager := createTestUser(t, "mgr@example.com", models.RoleManager)
	other := createTestUser(t, "other@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)

	task := models.Task{
		Name:        "scoped",
		Description: "d",
		Assignee:    employee.ID,
		CreatedBy:   manager.ID,
		Deadline:    futureDeadline(),
		Status:      models.StatusNewTask,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	total := func(token string) float64 {
		w := doRequest(t, r, "GET", "/api/tasks/dashboard", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("dashboard: expected 200, got %d", w.Code)
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		return data["tasks"].(map[string]interface{})["total"].(float64)
	}

	if got := total(tokenFor(t, manager)); got != 1 {
		t.Errorf("creator dashboard: expected 1 task, got %v", got)
	}
	if got := total(tokenFor(t, employee)); got != 1 {
		t.Errorf("assignee dashboard: expected 1 task, got %v", got)
	}
	// чужой менеджер задачу не видит
	if got := total(tokenFor(t, other)); got != 0 {
		t.Errorf("unrelated manager dashboard: expected 0 tasks, got %v", got)
	}
}
