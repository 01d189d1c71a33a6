package server

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/leandre000/P-manager/internal/db"
	"github.com/leandre000/P-manager/internal/types"
)

// memStore is an in-memory Store for handler tests. It mirrors the
// Postgres implementation's error contract, including ErrNotFound for
// rows owned by another user.
type memStore struct {
	mu     sync.Mutex
	nextID int
	now    func() time.Time

	users map[string]types.User // id -> user
	tasks map[string]types.Task
	goals map[string]types.Goal
	notes map[string]types.Note
}

func newMemStore(now func() time.Time) *memStore {
	if now == nil {
		now = time.Now
	}
	return &memStore{
		now:   now,
		users: make(map[string]types.User),
		tasks: make(map[string]types.Task),
		goals: make(map[string]types.Goal),
		notes: make(map[string]types.Note),
	}
}

func (s *memStore) newID() string {
	s.nextID++
	return "id-" + strconv.Itoa(s.nextID)
}

func (s *memStore) CreateUser(_ context.Context, email, passwordHash, name string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return types.User{}, db.ErrDuplicateEmail
		}
	}

	user := types.User{
		ID:        s.newID(),
		Email:     email,
		Password:  passwordHash,
		Name:      name,
		CreatedAt: s.now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *memStore) UserByEmail(_ context.Context, email string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, db.ErrNotFound
}

func (s *memStore) UserByID(_ context.Context, id string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return types.User{}, db.ErrNotFound
	}
	return user, nil
}

func (s *memStore) UpdateUser(_ context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return types.User{}, db.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return types.User{}, db.ErrDuplicateEmail
		}
	}
	user.CreatedAt = existing.CreatedAt
	s.users[user.ID] = user
	return user, nil
}

func (s *memStore) Tasks(_ context.Context, userID string, filter types.TaskFilter) ([]types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []types.Task{}
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Tag != "" && !contains(t.Tags, filter.Tag) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *memStore) CreateTask(_ context.Context, task types.Task) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	task.CreatedAt = s.now()
	s.tasks[task.ID] = task
	return task, nil
}

func (s *memStore) UpdateTask(_ context.Context, id, userID string, patch types.TaskPatch) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return types.Task{}, db.ErrNotFound
	}
	task.Apply(patch)
	s.tasks[id] = task
	return task, nil
}

func (s *memStore) DeleteTask(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *memStore) Goals(_ context.Context, userID string) ([]types.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := []types.Goal{}
	for _, g := range s.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (s *memStore) GoalsSince(_ context.Context, userID string, since time.Time) ([]types.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := []types.Goal{}
	for _, g := range s.goals {
		if g.UserID == userID && !g.CreatedAt.Before(since) {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (s *memStore) CreateGoal(_ context.Context, goal types.Goal, dayStart time.Time, maxPerDay int) (types.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, g := range s.goals {
		if g.UserID == goal.UserID && !g.CreatedAt.Before(dayStart) {
			count++
		}
	}
	if count >= maxPerDay {
		return types.Goal{}, db.ErrGoalQuota
	}

	goal.ID = s.newID()
	goal.Completed = false
	goal.Streak = 0
	goal.CreatedAt = s.now()
	s.goals[goal.ID] = goal
	return goal, nil
}

func (s *memStore) UpdateGoal(_ context.Context, id, userID string, patch types.GoalPatch) (types.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return types.Goal{}, db.ErrNotFound
	}
	goal.Apply(patch)
	s.goals[id] = goal
	return goal, nil
}

func (s *memStore) DeleteGoal(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

func (s *memStore) Notes(_ context.Context, userID string) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := []types.Note{}
	for _, n := range s.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (s *memStore) CreateNote(_ context.Context, note types.Note) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = s.newID()
	note.CreatedAt = s.now()
	s.notes[note.ID] = note
	return note, nil
}

func (s *memStore) UpdateNote(_ context.Context, id, userID string, patch types.NotePatch) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return types.Note{}, db.ErrNotFound
	}
	note.Apply(patch)
	s.notes[id] = note
	return note, nil
}

func (s *memStore) DeleteNote(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return db.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}
