package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"projecthub_backend/internal/models"
	"projecthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestCreateProject_OwnerMembership(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "Creator", helpers.UniqueEmail("creator"), "password123")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name":        "Launch Plan",
		"description": "Q3 launch",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &created))

	// Exactly one membership, role OWNER, held by the creator.
	var members []models.ProjectMember
	assert.NoError(t, tx.Where("project_id = ?", created.ID).Find(&members).Error)
	assert.Len(t, members, 1)
	assert.Equal(t, models.RoleOwner, members[0].Role)
	assert.Equal(t, user.ID, members[0].UserID)
}

func TestCreateProject_MissingName(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Creator", helpers.UniqueEmail("noname"), "password123")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"description": "no name given",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Missing required fields: name")
}

func TestGetProject_NonMemberGets404(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("owner"), "password123")
	outsiderToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "Outsider", helpers.UniqueEmail("outsider"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Private Project")

	// Non-member sees 404, never 403 or an empty 200.
	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Project not found")

	// Same for every project-scoped subresource.
	tasksRes, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID+"/tasks", outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, tasksRes.StatusCode)

	membersRes, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID+"/members", outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, membersRes.StatusCode)
}

func TestListProjects_OnlyMemberships(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("listowner"), "password123")
	memberToken, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("listmember"), "password123")

	mine := helpers.CreateTestProject(t, tx, owner.ID, "Shared Project")
	helpers.AddTestMember(t, tx, mine.ID, member.ID, models.RoleMember)
	helpers.CreateTestProject(t, tx, owner.ID, "Hidden Project")

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects", memberToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Shared Project")
	assert.NotContains(t, body, "Hidden Project")
}

func TestUpdateProject_RequiresElevatedRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("updowner"), "password123")
	memberToken, member := helpers.CreateAndLoginUser(t, ts, tx, "Member", helpers.UniqueEmail("updmember"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Renamable")
	helpers.AddTestMember(t, tx, project.ID, member.ID, models.RoleMember)

	update := map[string]interface{}{"name": "Renamed", "status": "ON_HOLD"}

	// Plain MEMBER is denied as NotFound.
	memberRes, memberBody := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/projects/"+project.ID, memberToken, update)
	assert.Equal(t, http.StatusNotFound, memberRes.StatusCode)
	assert.Contains(t, memberBody, "Project not found")

	ownerRes, ownerBody := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/projects/"+project.ID, ownerToken, update)
	assert.Equal(t, http.StatusOK, ownerRes.StatusCode, ownerBody)
	assert.Contains(t, ownerBody, "Renamed")
	assert.Contains(t, ownerBody, "ON_HOLD")
}

func TestDeleteProject_OwnerOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("delowner"), "password123")
	adminToken, admin := helpers.CreateAndLoginUser(t, ts, tx, "Admin", helpers.UniqueEmail("deladmin"), "password123")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Doomed Project")
	helpers.AddTestMember(t, tx, project.ID, admin.ID, models.RoleAdmin)

	// ADMIN is not enough for delete.
	adminRes, adminBody := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+project.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, adminRes.StatusCode)
	assert.Contains(t, adminBody, "Project not found")

	ownerRes, ownerBody := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+project.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, ownerRes.StatusCode, ownerBody)
	assert.Contains(t, ownerBody, "Project deleted successfully")

	var count int64
	tx.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestProjectDashboard(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, owner := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("dash"), "password123")
	project := helpers.CreateTestProject(t, tx, owner.ID, "Dashboard Project")

	helpers.CreateTestTask(t, tx, project.ID, owner.ID, nil, "First")
	helpers.CreateTestTask(t, tx, project.ID, owner.ID, nil, "Second")

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID+"/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	var dashboard struct {
		MemberCount  int64            `json:"memberCount"`
		TaskCount    int64            `json:"taskCount"`
		TasksByState map[string]int64 `json:"tasksByStatus"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &dashboard))
	assert.Equal(t, int64(1), dashboard.MemberCount)
	assert.Equal(t, int64(2), dashboard.TaskCount)
	assert.Equal(t, int64(2), dashboard.TasksByState["TODO"])
}
