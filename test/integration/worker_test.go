package integration_test

import (
	"testing"
	"time"

	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/workers"
	"projecthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestDueDateWorker(tx *gorm.DB) *workers.DueDateWorker {
	notificationRepo := repositories.NewNotificationRepository()
	return workers.NewDueDateWorker(
		tx,
		repositories.NewTaskRepository(),
		notificationRepo,
		services.NewNotificationService(notificationRepo),
		time.Hour,
	)
}

func setDueDate(t *testing.T, tx *gorm.DB, task *models.Task, due time.Time) {
	if err := tx.Model(task).Update("due_date", due).Error; err != nil {
		t.Fatalf("failed to set due date: %v", err)
	}
}

func TestDueDateWorker_DueSoonNotifiesAssigneeOnce(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("dueowner"), "password123")
	_, assignee := helpers.CreateAndLoginUser(t, ts, tx, "Assignee", helpers.UniqueEmail("dueassignee"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Deadline Project")
	helpers.AddTestMember(t, tx, project.ID, assignee.ID, models.RoleMember)

	task := helpers.CreateTestTask(t, tx, project.ID, owner.ID, &assignee.ID, "Ship the release")
	setDueDate(t, tx, task, time.Now().Add(3*time.Hour))

	worker := newTestDueDateWorker(tx)
	worker.Scan()

	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskDueSoon))

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ? AND type = ?", assignee.ID, models.NotificationTaskDueSoon).First(&notification).Error)
	assert.Equal(t, "Task Due Soon", notification.Title)
	assert.Equal(t, `Task "Ship the release" is due soon`, notification.Message)
	assert.JSONEq(t, `{"project_id": "`+project.ID+`", "task_id": "`+task.ID+`"}`, string(notification.Data))

	// A second pass finds the same task but the existing row suppresses it.
	worker.Scan()
	worker.Scan()
	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskDueSoon))
}

func TestDueDateWorker_OverdueNotifiesAssigneeOnce(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("overdueowner"), "password123")
	_, assignee := helpers.CreateAndLoginUser(t, ts, tx, "Assignee", helpers.UniqueEmail("overdueassignee"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Late Project")
	helpers.AddTestMember(t, tx, project.ID, assignee.ID, models.RoleMember)

	task := helpers.CreateTestTask(t, tx, project.ID, owner.ID, &assignee.ID, "Missed deadline")
	setDueDate(t, tx, task, time.Now().Add(-2*time.Hour))

	worker := newTestDueDateWorker(tx)
	worker.Scan()
	worker.Scan()

	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskOverdue))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskDueSoon))

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ? AND type = ?", assignee.ID, models.NotificationTaskOverdue).First(&notification).Error)
	assert.Equal(t, "Task Overdue", notification.Title)
	assert.Equal(t, `Task "Missed deadline" is overdue`, notification.Message)
}

func TestDueDateWorker_SkipsUnassignedAndClosedTasks(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("quietowner"), "password123")
	_, assignee := helpers.CreateAndLoginUser(t, ts, tx, "Assignee", helpers.UniqueEmail("quietassignee"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Quiet Project")
	helpers.AddTestMember(t, tx, project.ID, assignee.ID, models.RoleMember)

	unassigned := helpers.CreateTestTask(t, tx, project.ID, owner.ID, nil, "Nobody's task")
	setDueDate(t, tx, unassigned, time.Now().Add(2*time.Hour))

	done := helpers.CreateTestTask(t, tx, project.ID, owner.ID, &assignee.ID, "Finished task")
	setDueDate(t, tx, done, time.Now().Add(-time.Hour))
	assert.NoError(t, tx.Model(done).Update("status", models.TaskStatusDone).Error)

	newTestDueDateWorker(tx).Scan()

	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskDueSoon))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, assignee.ID, models.NotificationTaskOverdue))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, owner.ID, models.NotificationTaskDueSoon))
}
