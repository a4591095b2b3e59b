package apperrors

import "net/http"

/*
Predefined errors for the project-management domain. Denial-as-NotFound:
membership checks answer 404 for both "does not exist" and "not yours", so
that project existence never leaks to non-members.
*/

var ErrProjectNotFound = New(
	CodeNotFound,
	"project",
	"Project not found",
	http.StatusNotFound,
)

var ErrTaskNotFound = New(
	CodeNotFound,
	"task",
	"Task not found",
	http.StatusNotFound,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// ErrAlreadyMember maps the (project_id, user_id) unique-constraint violation.
// A duplicate-add race resolves to this error, never to a 500.
var ErrAlreadyMember = New(
	CodeRuleViolation,
	"member",
	"User is already a member of this project",
	http.StatusBadRequest,
)

var ErrAssigneeNotMember = New(
	CodeRuleViolation,
	"task",
	"Assigned user is not a member of this project",
	http.StatusBadRequest,
)

// ErrCannotRemoveOwner guards the project creator's OWNER membership.
var ErrCannotRemoveOwner = New(
	CodeRuleViolation,
	"member",
	"Cannot remove project owner",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
