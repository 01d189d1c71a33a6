package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leandre000/P-manager/internal/auth"
	"github.com/leandre000/P-manager/internal/db"
	"github.com/leandre000/P-manager/internal/types"
)

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.store.Goals(c.Request.Context(), auth.UserID(c))
	if err != nil {
		log.Println("list goals:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (s *Server) listTodayGoals(c *gin.Context) {
	goals, err := s.store.GoalsSince(c.Request.Context(), auth.UserID(c), s.dayStart())
	if err != nil {
		log.Println("list today goals:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching today's goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (s *Server) createGoal(c *gin.Context) {
	var req types.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := types.Goal{
		UserID:      auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
	}

	created, err := s.store.CreateGoal(c.Request.Context(), goal, s.dayStart(), maxGoalsPerDay)
	if err != nil {
		if errors.Is(err, db.ErrGoalQuota) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 goals allowed per day"})
			return
		}
		log.Println("create goal:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating goal"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateGoal(c *gin.Context) {
	var req types.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := s.store.UpdateGoal(c.Request.Context(), c.Param("id"), auth.UserID(c), types.GoalPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		log.Println("update goal:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (s *Server) deleteGoal(c *gin.Context) {
	err := s.store.DeleteGoal(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		log.Println("delete goal:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
