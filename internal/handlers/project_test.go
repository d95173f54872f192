package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"taskhub/internal/database"
	"taskhub/internal/models"
)

func TestProjectCreateValidation(t *testing.T) {
	r := newTestRouter(t)

	manager := createTestUser(t, "mgr@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)
	mgrToken := tokenFor(t, manager)

	// роль employee не создаёт проекты
	w := doRequest(t, r, "POST", "/api/projects", tokenFor(t, employee), map[string]interface{}{
		"name": "x", "description": "y", "project_manager": manager.ID,
		"deadline": futureDeadline(), "priority": "low",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("employee create project: expected 403, got %d", w.Code)
	}

	// дедлайн в прошлом отклоняется
	w = doRequest(t, r, "POST", "/api/projects", mgrToken, map[string]interface{}{
		"name": "x", "description": "y", "project_manager": manager.ID,
		"deadline": "2020-01-01T00:00:00Z", "priority": "low",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("past deadline: expected 400, got %d", w.Code)
	}

	// приоритет вне enum
	w = doRequest(t, r, "POST", "/api/projects", mgrToken, map[string]interface{}{
		"name": "x", "description": "y", "project_manager": manager.ID,
		"deadline": futureDeadline(), "priority": "urgent",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad priority: expected 400, got %d", w.Code)
	}

	// project_manager обязан ссылаться на менеджера
	w = doRequest(t, r, "POST", "/api/projects", mgrToken, map[string]interface{}{
		"name": "x", "description": "y", "project_manager": employee.ID,
		"deadline": futureDeadline(), "priority": "low",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("employee as project_manager: expected 400, got %d", w.Code)
	}
}

// Менеджер может создать проект на другого менеджера — ссылка проверяется
// по роли, а не по совпадению с автором запроса.
func TestProjectCreateForOtherManager(t *testing.T) {
	r := newTestRouter(t)

	creator := createTestUser(t, "mgr1@example.com", models.RoleManager)
	other := createTestUser(t, "mgr2@example.com", models.RoleManager)

	w := doRequest(t, r, "POST", "/api/projects", tokenFor(t, creator), map[string]interface{}{
		"name": "delegated", "description": "d", "project_manager": other.ID,
		"deadline": futureDeadline(), "priority": "high",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("delegated create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	project := decodeBody(t, w)["project"].(map[string]interface{})
	if project["project_manager"] != other.ID {
		t.Errorf("expected owner %s, got %v", other.ID, project["project_manager"])
	}
}

func TestProjectUpdateOwnership(t *testing.T) {
	r := newTestRouter(t)

	owner := createTestUser(t, "owner@example.com", models.RoleManager)
	other := createTestUser(t, "other@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)

	project := models.Project{Name: "orig", Description: "d", ProjectManager: owner.ID,
		Deadline: futureDeadline(), Priority: models.PriorityMedium, Tags: models.StringList{"x"}}
	database.DB.Create(&project)

	var before models.Project
	database.DB.First(&before, "id = ?", project.ID)

	// не-владелец и не-менеджер проект не трогают
	w := doRequest(t, r, "PUT", "/api/projects/"+project.ID, tokenFor(t, other),
		map[string]string{"name": "hijacked"})
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign manager update: expected 404, got %d", w.Code)
	}

	w = doRequest(t, r, "PUT", "/api/projects/"+project.ID, tokenFor(t, employee),
		map[string]string{"name": "hijacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("employee update: expected 403, got %d", w.Code)
	}

	// запись не изменилась
	var after models.Project
	database.DB.First(&after, "id = ?", project.ID)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("project mutated by rejected update:\nbefore %+v\nafter  %+v", before, after)
	}

	// владелец обновляет
	w = doRequest(t, r, "PUT", "/api/projects/"+project.ID, tokenFor(t, owner),
		map[string]interface{}{"name": "renamed", "completion_percentage": 40})
	if w.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["project"].(map[string]interface{})
	if updated["name"] != "renamed" || updated["completion_percentage"] != float64(40) {
		t.Errorf("owner update not applied: %v", updated)
	}
}

func TestProjectListVisibleToAll(t *testing.T) {
	r := newTestRouter(t)

	owner := createTestUser(t, "owner@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)

	project := models.Project{Name: "p", Description: "d", ProjectManager: owner.ID,
		Deadline: futureDeadline(), Priority: models.PriorityLow, Tags: models.StringList{}}
	database.DB.Create(&project)

	// список проектов открыт любому аутентифицированному пользователю
	w := doRequest(t, r, "GET", "/api/projects", tokenFor(t, employee), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("employee list projects: expected 200, got %d", w.Code)
	}
	projects := decodeBody(t, w)["projects"].([]interface{})
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].(map[string]interface{})["project_manager_name"] != owner.Name {
		t.Errorf("project_manager_name not populated")
	}

	// без токена — 401
	w = doRequest(t, r, "GET", "/api/projects", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list: expected 401, got %d", w.Code)
	}
}

func TestProjectCommentsFollowParentAccess(t *testing.T) {
	r := newTestRouter(t)

	owner := createTestUser(t, "owner@example.com", models.RoleManager)
	employee := createTestUser(t, "emp@example.com", models.RoleEmployee)

	project := models.Project{Name: "p", Description: "d", ProjectManager: owner.ID,
		Deadline: futureDeadline(), Priority: models.PriorityLow, Tags: models.StringList{}}
	database.DB.Create(&project)

	// проект читается всеми — значит, и комментируется всеми
	w := doRequest(t, r, "POST", "/api/projects/"+project.ID+"/comments", tokenFor(t, employee),
		map[string]string{"content": "looks good"})
	if w.Code != http.StatusCreated {
		t.Fatalf("employee comment: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	w = doRequest(t, r, "GET", "/api/projects/"+project.ID+"/comments", tokenFor(t, owner), nil)
	comments := decodeBody(t, w)["comments"].([]interface{})
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	cm := comments[0].(map[string]interface{})
	if cm["related_type"] != string(models.RelatedProject) {
		t.Errorf("expected related_type project, got %v", cm["related_type"])
	}
	if cm["author_name"] != employee.Name {
		t.Errorf("author_name not populated")
	}

	// пустой комментарий отклоняется
	w = doRequest(t, r, "POST", "/api/projects/"+project.ID+"/comments", tokenFor(t, employee),
		map[string]string{"content": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank comment: expected 400, got %d", w.Code)
	}
}
