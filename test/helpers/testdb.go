package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"projecthub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the raw password placed in
// PasswordHash by the caller.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user.PasswordHash = string(hashed)

	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", user.Email, err)
	}
}

// CreateAndLoginUser creates a user inside the test transaction and logs in
// through the API, returning the bearer token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, name, email, password string) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
	}
	CreateUser(t, tx, user)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// UniqueEmail builds an email that cannot collide across parallel tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateTestProject inserts a project with the creator's OWNER membership.
func CreateTestProject(t *testing.T, tx *gorm.DB, ownerID, name string) *models.Project {
	project := &models.Project{
		Name:        name,
		Description: "Test description",
		Status:      models.ProjectStatusActive,
		CreatedByID: ownerID,
	}
	if err := tx.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    ownerID,
		Role:      models.RoleOwner,
	}
	if err := tx.Create(member).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}
	return project
}

// AddTestMember attaches an existing user to a project.
func AddTestMember(t *testing.T, tx *gorm.DB, projectID, userID string, role models.MemberRole) *models.ProjectMember {
	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := tx.Create(member).Error; err != nil {
		t.Fatalf("failed to add test member: %v", err)
	}
	return member
}

// CreateTestTask inserts a task directly, bypassing the API.
func CreateTestTask(t *testing.T, tx *gorm.DB, projectID, creatorID string, assigneeID *string, title string) *models.Task {
	task := &models.Task{
		ProjectID:    projectID,
		Title:        title,
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityMedium,
		CreatedByID:  creatorID,
		AssignedToID: assigneeID,
	}
	if err := tx.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CountNotifications counts a user's notifications of the given type inside
// the test transaction.
func CountNotifications(t *testing.T, tx *gorm.DB, userID string, nType models.NotificationType) int64 {
	var count int64
	err := tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, nType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
