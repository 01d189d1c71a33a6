package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leandre000/P-manager/internal/auth"
	"github.com/leandre000/P-manager/internal/types"
)

// maxGoalsPerDay caps goal creation per user per calendar day.
const maxGoalsPerDay = 5

// Store is the persistence handle the server works against. *db.DB
// implements it; tests use an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (types.User, error)
	UserByEmail(ctx context.Context, email string) (types.User, error)
	UserByID(ctx context.Context, id string) (types.User, error)
	UpdateUser(ctx context.Context, user types.User) (types.User, error)

	Tasks(ctx context.Context, userID string, filter types.TaskFilter) ([]types.Task, error)
	CreateTask(ctx context.Context, task types.Task) (types.Task, error)
	UpdateTask(ctx context.Context, id, userID string, patch types.TaskPatch) (types.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error

	Goals(ctx context.Context, userID string) ([]types.Goal, error)
	GoalsSince(ctx context.Context, userID string, since time.Time) ([]types.Goal, error)
	CreateGoal(ctx context.Context, goal types.Goal, dayStart time.Time, maxPerDay int) (types.Goal, error)
	UpdateGoal(ctx context.Context, id, userID string, patch types.GoalPatch) (types.Goal, error)
	DeleteGoal(ctx context.Context, id, userID string) error

	Notes(ctx context.Context, userID string) ([]types.Note, error)
	CreateNote(ctx context.Context, note types.Note) (types.Note, error)
	UpdateNote(ctx context.Context, id, userID string, patch types.NotePatch) (types.Note, error)
	DeleteNote(ctx context.Context, id, userID string) error
}

type Server struct {
	store Store
	auth  *auth.Auth
	now   func() time.Time
}

// New builds a Server. now may be nil, in which case time.Now is
// used; tests inject a fixed clock.
func New(store Store, auth *auth.Auth, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{store: store, auth: auth, now: now}
}

// Router wires every route. Updates accept both PUT and PATCH.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.health)

	api := router.Group("/api")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.PUT("/auth/profile", s.auth.Middleware(), s.updateProfile)

	tasks := api.Group("/tasks", s.auth.Middleware())
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.PATCH("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)

	goals := api.Group("/goals", s.auth.Middleware())
	goals.GET("", s.listGoals)
	goals.GET("/today", s.listTodayGoals)
	goals.POST("", s.createGoal)
	goals.PUT("/:id", s.updateGoal)
	goals.PATCH("/:id", s.updateGoal)
	goals.DELETE("/:id", s.deleteGoal)

	notes := api.Group("/notes", s.auth.Middleware())
	notes.GET("", s.listNotes)
	notes.POST("", s.createNote)
	notes.PUT("/:id", s.updateNote)
	notes.PATCH("/:id", s.updateNote)
	notes.DELETE("/:id", s.deleteNote)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// dayStart is the beginning of the current calendar day in server
// local time, the boundary for the daily goal quota.
func (s *Server) dayStart() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
