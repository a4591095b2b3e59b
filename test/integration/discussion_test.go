package integration_test

import (
	"net/http"
	"testing"

	"projecthub_backend/internal/models"
	"projecthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestCreateDiscussion_NotifiesOtherMembers(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	authorToken, author := helpers.CreateAndLoginUser(t, ts, tx, "Author", helpers.UniqueEmail("discauthor"), "password123")
	_, peerOne := helpers.CreateAndLoginUser(t, ts, tx, "Peer One", helpers.UniqueEmail("peer1"), "password123")
	_, peerTwo := helpers.CreateAndLoginUser(t, ts, tx, "Peer Two", helpers.UniqueEmail("peer2"), "password123")

	project := helpers.CreateTestProject(t, tx, author.ID, "Talkative Project")
	helpers.AddTestMember(t, tx, project.ID, peerOne.ID, models.RoleMember)
	helpers.AddTestMember(t, tx, project.ID, peerTwo.ID, models.RoleMember)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/discussions", authorToken, map[string]interface{}{
		"title":   "Release timing",
		"content": "Can we ship on Friday?",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, "Release timing")

	// Every member except the author gets one notification.
	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, peerOne.ID, models.NotificationDiscussionAdded))
	assert.Equal(t, int64(1), helpers.CountNotifications(t, tx, peerTwo.ID, models.NotificationDiscussionAdded))
	assert.Equal(t, int64(0), helpers.CountNotifications(t, tx, author.ID, models.NotificationDiscussionAdded))

	var notification models.Notification
	assert.NoError(t, tx.Where("user_id = ? AND type = ?", peerOne.ID, models.NotificationDiscussionAdded).First(&notification).Error)
	assert.Equal(t, "New Discussion", notification.Title)
	assert.Equal(t, "New discussion started: Release timing", notification.Message)
}

func TestCreateDiscussion_MissingContent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, author := helpers.CreateAndLoginUser(t, ts, tx, "Author", helpers.UniqueEmail("discempty"), "password123")
	project := helpers.CreateTestProject(t, tx, author.ID, "Quiet Project")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/discussions", token, map[string]interface{}{
		"title": "No body",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Missing required fields: content")
}

func TestListDiscussions_MemberOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	authorToken, author := helpers.CreateAndLoginUser(t, ts, tx, "Author", helpers.UniqueEmail("disclist"), "password123")
	outsiderToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "Outsider", helpers.UniqueEmail("discout"), "password123")

	project := helpers.CreateTestProject(t, tx, author.ID, "Gated Project")

	_, createBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/discussions", authorToken, map[string]interface{}{
		"title":   "Internal notes",
		"content": "Members only",
	})
	assert.Contains(t, createBody, "Internal notes")

	memberRes, memberBody := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID+"/discussions", authorToken, nil)
	assert.Equal(t, http.StatusOK, memberRes.StatusCode)
	assert.Contains(t, memberBody, "Internal notes")

	outsiderRes, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID+"/discussions", outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, outsiderRes.StatusCode)
}
