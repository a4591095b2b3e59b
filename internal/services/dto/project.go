package dto

import (
	"time"

	"projecthub_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETED ON_HOLD CANCELLED"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

type RemoveMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type CreateDiscussionRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=10000"`
}

// ---------------- Responses ----------------

type MemberResponse struct {
	ID       string            `json:"id"`
	UserID   string            `json:"userId"`
	Role     models.MemberRole `json:"role"`
	JoinedAt time.Time         `json:"joinedAt"`
	User     *UserResponse     `json:"user,omitempty"`
}

type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	CreatedByID string               `json:"createdById"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Members     []MemberResponse     `json:"members,omitempty"`
	Tasks       []TaskResponse       `json:"tasks,omitempty"`
	Discussions []DiscussionResponse `json:"discussions,omitempty"`
}

type DiscussionResponse struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"projectId"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *UserResponse `json:"user,omitempty"`
}

// DashboardResponse aggregates per-project counters for the board header.
type DashboardResponse struct {
	ProjectID    string           `json:"projectId"`
	MemberCount  int64            `json:"memberCount"`
	TaskCount    int64            `json:"taskCount"`
	TasksByState map[string]int64 `json:"tasksByStatus"`
	TasksByPrio  map[string]int64 `json:"tasksByPriority"`
	OverdueCount int64            `json:"overdueCount"`
}
