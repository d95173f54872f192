package handlers

import (
	"errors"

	"taskhub/internal/models"
)

var (
	errInvalidTransition = errors.New("invalid status transition")
	errNotAuthorized     = errors.New("not authorized for this transition")
)

// порядок статусов; движение только вперёд и ровно на один шаг
var statusOrder = map[models.TaskStatus]int{
	models.StatusNewTask:    0,
	models.StatusInProgress: 1,
	models.StatusCompleted:  2,
	models.StatusApproved:   3,
}

// canChangeTaskStatus — вся логика прав на смену статуса:
//
//	new_task -> in_progress   только исполнитель
//	in_progress -> completed  только исполнитель
//	completed -> approved     только менеджер, создавший задачу
//
// Любая другая пара отклоняется. Менеджер не двигает чужую задачу
// через in_progress/completed, даже если он её создал; исполнитель
// никогда не ставит approved сам.
func canChangeTaskStatus(user models.User, task models.Task, next models.TaskStatus) error {
	cur, okCur := statusOrder[task.Status]
	nxt, okNext := statusOrder[next]
	if !okCur || !okNext || nxt != cur+1 {
		return errInvalidTransition
	}

	if next == models.StatusApproved {
		if user.Role != models.RoleManager || task.CreatedBy != user.ID {
			return errNotAuthorized
		}
		return nil
	}

	if task.Assignee != user.ID {
		return errNotAuthorized
	}
	return nil
}
