package handlers

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
)

// Денормализованные имена (assignee_name и т.п.) не хранятся в таблицах,
// а подставляются перед отдачей наружу.

func usersByID(ids []string) map[string]models.User {
	out := map[string]models.User{}
	if len(ids) == 0 {
		return out
	}
	var users []models.User
	database.DB.Where("id IN ?", ids).Find(&users)
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}

func projectsByID(ids []string) map[string]models.Project {
	out := map[string]models.Project{}
	if len(ids) == 0 {
		return out
	}
	var projects []models.Project
	database.DB.Where("id IN ?", ids).Find(&projects)
	for _, p := range projects {
		out[p.ID] = p
	}
	return out
}

func fillProjectNames(projects []models.Project) {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ProjectManager)
	}
	users := usersByID(ids)
	for i := range projects {
		if u, ok := users[projects[i].ProjectManager]; ok {
			projects[i].ProjectManagerName = u.Name
		}
	}
}

func fillTaskNames(tasks []models.Task) {
	var userIDs, projectIDs []string
	for _, t := range tasks {
		userIDs = append(userIDs, t.Assignee, t.CreatedBy)
		if t.ProjectID != nil {
			projectIDs = append(projectIDs, *t.ProjectID)
		}
	}
	users := usersByID(userIDs)
	projects := projectsByID(projectIDs)
	for i := range tasks {
		if u, ok := users[tasks[i].Assignee]; ok {
			tasks[i].AssigneeName = u.Name
		}
		if u, ok := users[tasks[i].CreatedBy]; ok {
			tasks[i].CreatedByName = u.Name
		}
		if tasks[i].ProjectID != nil {
			if p, ok := projects[*tasks[i].ProjectID]; ok {
				tasks[i].ProjectName = p.Name
			}
		}
	}
}

func fillCommentNames(comments []models.Comment) {
	ids := make([]string, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.AuthorID)
	}
	users := usersByID(ids)
	for i := range comments {
		if u, ok := users[comments[i].AuthorID]; ok {
			comments[i].AuthorName = u.Name
		}
	}
}

func fillAttachmentNames(files []models.FileAttachment) {
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.UploadedBy)
	}
	users := usersByID(ids)
	for i := range files {
		if u, ok := users[files[i].UploadedBy]; ok {
			files[i].UploadedByName = u.Name
		}
	}
}
