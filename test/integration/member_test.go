package integration_test

import (
	"net/http"
	"testing"

	"projecthub_backend/internal/models"
	"projecthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestAddMember_NotifiesNewMember(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("addowner"), "password123")
	_, invitee := helpers.CreateAndLoginUser(t, ts, tx, "Invitee", helpers.UniqueEmail("invitee"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Recruiting")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/members", ownerToken, map[string]interface{}{
		"userId": invitee.ID,
		"role":   "MEMBER",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Exactly one PROJECT_INVITED notification, to the invitee only.
	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, invitee.ID, models.NotificationProjectInvited))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, owner.ID, models.NotificationProjectInvited))

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ? AND type = ?", invitee.ID, models.NotificationProjectInvited).First(&notification).Error)
	assert.Equal(t, "Project Invitation", notification.Title)
	assert.Equal(t, "You have been added to the project: Recruiting", notification.Message)
	assert.False(t, notification.IsRead)
}

func TestAddMember_Duplicate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("dupowner"), "password123")
	_, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("dupmember"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "No Duplicates")
	helpers.AddTestMember(t, tx, project.ID, member.ID, models.RoleMember)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/members", ownerToken, map[string]interface{}{
		"userId": member.ID,
		"role":   "MEMBER",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "User is already a member of this project")

	// No extra row was created.
	var count int64
	tx.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAddMember_RequiresElevatedRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("rolowner"), "password123")
	memberToken, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("rolmember"), "password123")
	_, target := helpers.CreateAndLoginUser(t, ts, tx, "Target", helpers.UniqueEmail("roltarget"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Locked Down")
	helpers.AddTestMember(t, tx, project.ID, member.ID, models.RoleMember)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/members", memberToken, map[string]interface{}{
		"userId": target.ID,
		"role":   "MEMBER",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Project not found")
}

func TestRemoveMember_CreatorIsProtected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("remowner"), "password123")
	adminToken, admin := helpers.CreateAndLoginUser(t, ts, tx, "Admin", helpers.UniqueEmail("remadmin"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Protected Owner")
	helpers.AddTestMember(t, tx, project.ID, admin.ID, models.RoleAdmin)

	// Even an ADMIN cannot remove the recorded creator.
	res, body := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+project.ID+"/members", adminToken, map[string]interface{}{
		"userId": owner.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Cannot remove project owner")

	var count int64
	tx.Model(&models.ProjectMember{}).Where("project_id = ? AND user_id = ?", project.ID, owner.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRemoveMember_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("remsowner"), "password123")
	_, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("remsmember"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Shrinking Team")
	helpers.AddTestMember(t, tx, project.ID, member.ID, models.RoleMember)

	res, body := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+project.ID+"/members", ownerToken, map[string]interface{}{
		"userId": member.ID,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Member removed successfully")

	var count int64
	tx.Model(&models.ProjectMember{}).Where("project_id = ? AND user_id = ?", project.ID, member.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
