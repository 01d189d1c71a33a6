package types

import "time"

// Request bodies, one schema per endpoint. Fields tagged required are
// rejected by binding before any business logic runs.

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries only the fields the client wants to
// change; empty fields are left untouched.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

// Update requests are partial: nil fields are left unchanged, so a
// PATCH body may carry any subset of fields.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Status      *string  `json:"status"`
	Tags        []string `json:"tags"`
}

type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateGoalRequest keeps Completed a pointer so "not sent" can be
// told apart from "set to false"; the streak transition depends on it.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// TaskFilter narrows a task listing. Zero-value fields are skipped;
// set fields are AND-combined on top of the owner scope.
type TaskFilter struct {
	Status   string
	Priority string
	Tag      string
}

// TaskPatch is a partial update; nil fields leave the stored value
// unchanged. SetDueDate distinguishes clearing the due date from
// omitting it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	SetDueDate  bool
	Status      *string
	Tags        []string
}

type GoalPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

type NotePatch struct {
	Title   *string
	Content *string
}
