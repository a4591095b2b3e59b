package services

import (
	"fmt"

	"projecthub_backend/internal/models"
)

/*
Domain events that fan out into notifications. Each event computes its own
recipient set as a pure function: deduplicated by user id, and never
containing the actor who caused the event.
*/

type NotificationEvent interface {
	Type() models.NotificationType
	Recipients() []string
	Title() string
	Message() string
	Data() map[string]string
}

// ---------------- TaskAssigned ----------------

type TaskAssignedEvent struct {
	Task       *models.Task
	AssigneeID string
	ActorID    string
	// Reassigned distinguishes assignment on an existing task from
	// assignment at creation time; the wording differs.
	Reassigned bool
}

func (e TaskAssignedEvent) Type() models.NotificationType { return models.NotificationTaskAssigned }

func (e TaskAssignedEvent) Recipients() []string {
	if e.AssigneeID == "" || e.AssigneeID == e.ActorID {
		return nil
	}
	return []string{e.AssigneeID}
}

func (e TaskAssignedEvent) Title() string {
	if e.Reassigned {
		return "Task Assigned"
	}
	return "New Task Assigned"
}

func (e TaskAssignedEvent) Message() string {
	if e.Reassigned {
		return fmt.Sprintf("You have been assigned a task: %s", e.Task.Title)
	}
	return fmt.Sprintf("You have been assigned a new task: %s", e.Task.Title)
}

func (e TaskAssignedEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Task.ProjectID, "task_id": e.Task.ID}
}

// ---------------- TaskUpdated ----------------

type TaskUpdatedEvent struct {
	Task    *models.Task
	ActorID string
}

func (e TaskUpdatedEvent) Type() models.NotificationType { return models.NotificationTaskUpdated }

func (e TaskUpdatedEvent) Recipients() []string {
	if e.Task.AssignedToID == nil || *e.Task.AssignedToID == "" || *e.Task.AssignedToID == e.ActorID {
		return nil
	}
	return []string{*e.Task.AssignedToID}
}

func (e TaskUpdatedEvent) Title() string { return "Task Updated" }

func (e TaskUpdatedEvent) Message() string {
	return fmt.Sprintf("Task %q has been updated", e.Task.Title)
}

func (e TaskUpdatedEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Task.ProjectID, "task_id": e.Task.ID}
}

// ---------------- CommentAdded ----------------

type CommentAddedEvent struct {
	Task      *models.Task
	MemberIDs []string
	ActorID   string
}

func (e CommentAddedEvent) Type() models.NotificationType { return models.NotificationCommentAdded }

// Recipients is the assignee plus every project member, minus the actor.
// The assignee is usually also in the member set; dedup keeps them once.
func (e CommentAddedEvent) Recipients() []string {
	ids := make([]string, 0, len(e.MemberIDs)+1)
	if e.Task.AssignedToID != nil {
		ids = append(ids, *e.Task.AssignedToID)
	}
	ids = append(ids, e.MemberIDs...)
	return dedupExcluding(e.ActorID, ids)
}

func (e CommentAddedEvent) Title() string { return "New Comment" }

func (e CommentAddedEvent) Message() string {
	return fmt.Sprintf("New comment on task: %s", e.Task.Title)
}

func (e CommentAddedEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Task.ProjectID, "task_id": e.Task.ID}
}

// ---------------- DiscussionAdded ----------------

type DiscussionAddedEvent struct {
	Discussion *models.ProjectDiscussion
	MemberIDs  []string
	ActorID    string
}

func (e DiscussionAddedEvent) Type() models.NotificationType {
	return models.NotificationDiscussionAdded
}

func (e DiscussionAddedEvent) Recipients() []string {
	return dedupExcluding(e.ActorID, e.MemberIDs)
}

func (e DiscussionAddedEvent) Title() string { return "New Discussion" }

func (e DiscussionAddedEvent) Message() string {
	return fmt.Sprintf("New discussion started: %s", e.Discussion.Title)
}

func (e DiscussionAddedEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Discussion.ProjectID}
}

// ---------------- MemberAdded ----------------

type MemberAddedEvent struct {
	Project     *models.Project
	NewMemberID string
}

func (e MemberAddedEvent) Type() models.NotificationType { return models.NotificationProjectInvited }

func (e MemberAddedEvent) Recipients() []string {
	return []string{e.NewMemberID}
}

func (e MemberAddedEvent) Title() string { return "Project Invitation" }

func (e MemberAddedEvent) Message() string {
	return fmt.Sprintf("You have been added to the project: %s", e.Project.Name)
}

func (e MemberAddedEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Project.ID}
}

// ---------------- Due-date worker events ----------------

type TaskDueSoonEvent struct {
	Task *models.Task
}

func (e TaskDueSoonEvent) Type() models.NotificationType { return models.NotificationTaskDueSoon }

func (e TaskDueSoonEvent) Recipients() []string {
	if e.Task.AssignedToID == nil || *e.Task.AssignedToID == "" {
		return nil
	}
	return []string{*e.Task.AssignedToID}
}

func (e TaskDueSoonEvent) Title() string { return "Task Due Soon" }

func (e TaskDueSoonEvent) Message() string {
	return fmt.Sprintf("Task %q is due soon", e.Task.Title)
}

func (e TaskDueSoonEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Task.ProjectID, "task_id": e.Task.ID}
}

type TaskOverdueEvent struct {
	Task *models.Task
}

func (e TaskOverdueEvent) Type() models.NotificationType { return models.NotificationTaskOverdue }

func (e TaskOverdueEvent) Recipients() []string {
	if e.Task.AssignedToID == nil || *e.Task.AssignedToID == "" {
		return nil
	}
	return []string{*e.Task.AssignedToID}
}

func (e TaskOverdueEvent) Title() string { return "Task Overdue" }

func (e TaskOverdueEvent) Message() string {
	return fmt.Sprintf("Task %q is overdue", e.Task.Title)
}

func (e TaskOverdueEvent) Data() map[string]string {
	return map[string]string{"project_id": e.Task.ProjectID, "task_id": e.Task.ID}
}

// dedupExcluding keeps the first occurrence of each id, dropping empty ids
// and the excluded actor.
func dedupExcluding(exclude string, ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == exclude {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
