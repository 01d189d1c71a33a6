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

func (s *Server) listNotes(c *gin.Context) {
	notes, err := s.store.Notes(c.Request.Context(), auth.UserID(c))
	if err != nil {
		log.Println("list notes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (s *Server) createNote(c *gin.Context) {
	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := s.store.CreateNote(c.Request.Context(), types.Note{
		UserID:  auth.UserID(c),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		log.Println("create note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (s *Server) updateNote(c *gin.Context) {
	var req types.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := s.store.UpdateNote(c.Request.Context(), c.Param("id"), auth.UserID(c), types.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		log.Println("update note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating note"})
		return
	}

	c.JSON(http.StatusOK, note)
}

func (s *Server) deleteNote(c *gin.Context) {
	err := s.store.DeleteNote(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		log.Println("delete note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
