package dto

import (
	"time"

	"projecthub_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateTaskRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  string     `json:"description" validate:"omitempty,max=10000"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	AssignedToID *string    `json:"assignedToId,omitempty"`
}

type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS DONE CANCELLED"`
	Priority     *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	AssignedToID *string    `json:"assignedToId,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// ---------------- Responses ----------------

type TaskResponse struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"projectId"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	CreatedByID  string              `json:"createdById"`
	AssignedToID *string             `json:"assignedToId,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	AssignedTo   *UserResponse       `json:"assignedTo,omitempty"`
	CreatedBy    *UserResponse       `json:"createdBy,omitempty"`
	Comments     []CommentResponse   `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"taskId"`
	UserID    string        `json:"userId"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *UserResponse `json:"user,omitempty"`
}
