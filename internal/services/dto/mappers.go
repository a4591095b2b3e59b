package dto

import (
	"encoding/json"

	"projecthub_backend/internal/models"
)

// Converters from persistence models to API responses. Preloaded
// associations are mapped only when present so list endpoints stay lean.

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewMemberResponse(m *models.ProjectMember) MemberResponse {
	resp := MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		resp.User = NewUserResponse(m.User)
	}
	return resp
}

func NewProjectResponse(p *models.Project) *ProjectResponse {
	resp := &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedByID: p.CreatedByID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.Members {
		resp.Members = append(resp.Members, NewMemberResponse(&p.Members[i]))
	}
	for i := range p.Tasks {
		resp.Tasks = append(resp.Tasks, *NewTaskResponse(&p.Tasks[i]))
	}
	for i := range p.Discussions {
		resp.Discussions = append(resp.Discussions, *NewDiscussionResponse(&p.Discussions[i]))
	}
	return resp
}

func NewTaskResponse(t *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = NewUserResponse(t.AssignedTo)
	}
	if t.CreatedBy != nil {
		resp.CreatedBy = NewUserResponse(t.CreatedBy)
	}
	for i := range t.Comments {
		resp.Comments = append(resp.Comments, *NewCommentResponse(&t.Comments[i]))
	}
	return resp
}

func NewCommentResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.User = NewUserResponse(c.User)
	}
	return resp
}

func NewDiscussionResponse(d *models.ProjectDiscussion) *DiscussionResponse {
	resp := &DiscussionResponse{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
	if d.User != nil {
		resp.User = NewUserResponse(d.User)
	}
	return resp
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]string
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
