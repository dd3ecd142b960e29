// Package handlers implements the HTTP endpoints over the history ledger.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memo-whisper/internal/app/repository"
)

const defaultListLimit = 20

// TranscriptionHandler serves read-only views of the transcription history.
type TranscriptionHandler struct {
	db repository.TranscriptionDAO
}

func NewTranscriptionHandler(db repository.TranscriptionDAO) *TranscriptionHandler {
	return &TranscriptionHandler{db: db}
}

// List returns recent ledger rows, newest first. ?input_dir= narrows the
// result to one batch source directory, ?limit= caps the row count.
func (h *TranscriptionHandler) List(c *gin.Context) {
	if inputDir := c.Query("input_dir"); inputDir != "" {
		transcriptions, err := h.db.GetByInputDir(inputDir, queryLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transcriptions": transcriptions, "count": len(transcriptions)})
		return
	}

	transcriptions, err := h.db.GetRecent(queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcriptions": transcriptions, "count": len(transcriptions)})
}

// Search returns ledger rows whose transcribed text contains ?q=.
func (h *TranscriptionHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	transcriptions, err := h.db.Search(term, queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcriptions": transcriptions, "count": len(transcriptions)})
}

// Stats returns aggregate counts over the whole ledger.
func (h *TranscriptionHandler) Stats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	return limit
}
