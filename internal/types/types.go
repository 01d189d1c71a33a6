package types

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the subset of User returned by the API. The password
// hash never leaves the server.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

type Task struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    string         `json:"priority"`
	DueDate     *time.Time     `json:"dueDate"`
	Status      string         `json:"status"`
	Tags        pq.StringArray `json:"tags"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Streak      int       `json:"streak"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Apply overwrites the fields the patch carries and leaves the rest
// untouched.
func (t *Task) Apply(patch TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.SetDueDate {
		t.DueDate = patch.DueDate
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Tags != nil {
		t.Tags = patch.Tags
	}
}

func (g *Goal) Apply(patch GoalPatch) {
	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.Description != nil {
		g.Description = *patch.Description
	}
	if patch.Completed != nil {
		g.ApplyCompletion(*patch.Completed)
	}
}

func (n *Note) Apply(patch NotePatch) {
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
}

// ApplyCompletion sets the completed flag and adjusts the streak by
// exactly one on a transition: false→true increments, true→false
// decrements floored at zero. No other path touches the streak.
func (g *Goal) ApplyCompletion(completed bool) {
	if completed && !g.Completed {
		g.Streak++
	} else if !completed && g.Completed && g.Streak > 0 {
		g.Streak--
	}
	g.Completed = completed
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
