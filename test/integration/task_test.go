package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"projecthub_backend/internal/models"
	"projecthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestCreateTask_AssigneeNotified(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("taskowner"), "password123")
	_, assignee := helpers.CreateAndLoginUser(t, ts, tx, "Assignee", helpers.UniqueEmail("assignee"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Task Project")
	helpers.AddTestMember(t, tx, project.ID, assignee.ID, models.RoleMember)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/tasks", ownerToken, map[string]interface{}{
		"title":        "Write the docs",
		"priority":     "HIGH",
		"assignedToId": assignee.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, "HIGH")

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ? AND type = ?", assignee.ID, models.NotificationTaskAssigned).First(&notification).Error)
	assert.Equal(t, "New Task Assigned", notification.Title)
	assert.Equal(t, "You have been assigned a new task: Write the docs", notification.Message)
	assert.False(t, notification.IsRead)

	// The actor never notifies themselves.
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, owner.ID, models.NotificationTaskAssigned))
}

func TestCreateTask_SelfAssignIsSilent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, owner := helpers.CreateAndLoginUser(t, ts, tx, "Solo", helpers.UniqueEmail("solo"), "password123")
	project := helpers.CreateTestProject(t, tx, owner.ID, "Solo Project")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/tasks", token, map[string]interface{}{
		"title":        "My own task",
		"assignedToId": owner.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, owner.ID, models.NotificationTaskAssigned))
}

func TestCreateTask_AssigneeMustBeMember(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("memowner"), "password123")
	_, outsider := helpers.CreateAndLoginUser(t, ts, tx, "Outsider", helpers.UniqueEmail("memoutsider"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Members Only")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/tasks", token, map[string]interface{}{
		"title":        "Impossible assignment",
		"assignedToId": outsider.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Assigned user is not a member of this project")

	var count int64
	tx.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateTask_MissingTaskIs404(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Nobody", helpers.UniqueEmail("nobody"), "password123")

	res, body := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/tasks/00000000-0000-0000-0000-000000000000", token, map[string]interface{}{
		"status": "DONE",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Task not found")
}

// Updates are partial: a field omitted from the payload keeps its stored
// value, so a status-only update never wipes the deadline.
func TestUpdateTask_OmittedDueDateIsKept(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, owner := helpers.CreateAndLoginUser(t, ts, tx, "Planner", helpers.UniqueEmail("planner"), "password123")
	project := helpers.CreateTestProject(t, tx, owner.ID, "Deadlines")

	task := helpers.CreateTestTask(t, tx, project.ID, owner.ID, nil, "Keep the date")
	due := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	assert.NoError(t, tx.Model(task).Update("due_date", due).Error)

	res, body := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	var reloaded models.Task
	assert.NoError(t, tx.First(&reloaded, "id = ?", task.ID).Error)
	assert.Equal(t, models.TaskStatusInProgress, reloaded.Status)
	if assert.NotNil(t, reloaded.DueDate) {
		assert.WithinDuration(t, due, *reloaded.DueDate, time.Second)
	}
}

func TestDeleteTask_RequiresElevatedRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("tdowner"), "password123")
	memberToken, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("tdmember"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Task Deletion")
	helpers.AddTestMember(t, tx, project.ID, member.ID, models.RoleMember)
	task := helpers.CreateTestTask(t, tx, project.ID, owner.ID, nil, "Deletable")

	// Plain MEMBER cannot delete; the denial reads as missing.
	memberRes, memberBody := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/tasks/"+task.ID, memberToken, nil)
	assert.Equal(t, http.StatusNotFound, memberRes.StatusCode)
	assert.Contains(t, memberBody, "Task not found")

	ownerRes, ownerBody := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/tasks/"+task.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, ownerRes.StatusCode, ownerBody)
	assert.Contains(t, ownerBody, "Task deleted successfully")
}

// Walks the member/task/comment flow of a three-person project and checks
// who gets notified at each step.
func TestTaskNotificationFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, userA := helpers.CreateAndLoginUser(t, ts, tx, "Alice", helpers.UniqueEmail("flow_a"), "password123")
	tokenB, userB := helpers.CreateAndLoginUser(t, ts, tx, "Bob", helpers.UniqueEmail("flow_b"), "password123")
	tokenC, userC := helpers.CreateAndLoginUser(t, ts, tx, "Carol", helpers.UniqueEmail("flow_c"), "password123")

	project := helpers.CreateTestProject(t, tx, userA.ID, "Flow Project")
	helpers.AddTestMember(t, tx, project.ID, userB.ID, models.RoleMember)
	helpers.AddTestMember(t, tx, project.ID, userC.ID, models.RoleMember)

	// B creates a task assigned to C: exactly one notification, to C.
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/tasks", tokenB, map[string]interface{}{
		"title":        "Prepare the demo",
		"assignedToId": userC.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var task struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &task))

	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, userC.ID, models.NotificationTaskAssigned))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, userA.ID, models.NotificationTaskAssigned))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, userB.ID, models.NotificationTaskAssigned))

	// C updates only the status: no further notifications anywhere.
	updRes, updBody := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/tasks/"+task.ID, tokenC, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusOK, updRes.StatusCode, updBody)

	var total int64
	tx.Model(&models.Notification{}).Count(&total)
	assert.Equal(t, int64(1), total)

	// B comments: recipients are C (assignee) and A (member), never B.
	comRes, comBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/tasks/"+task.ID+"/comments", tokenB, map[string]interface{}{
		"content": "Looks good so far",
	})
	assert.Equal(t, http.StatusCreated, comRes.StatusCode, comBody)

	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, userA.ID, models.NotificationCommentAdded))
	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, userC.ID, models.NotificationCommentAdded))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, userB.ID, models.NotificationCommentAdded))
}
