package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/your-org/seed-marketplace/internal/pkg/storage"
)

// SignedFileStore serves objects behind signed links
type SignedFileStore interface {
	Verify(objectPath, token string) error
	FullPath(objectPath string) (string, error)
}

// FileHandler serves images from the local object store
type FileHandler struct {
	store SignedFileStore
}

// NewFileHandler creates a new file handler
func NewFileHandler(store SignedFileStore) *FileHandler {
	return &FileHandler{store: store}
}

// Serve returns the object named by the path if its token checks out
func (h *FileHandler) Serve(c *gin.Context) {
	objectPath := c.Param("path")

	if err := h.store.Verify(objectPath, c.Query("token")); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, storage.ErrInvalidPath) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	fullPath, err := h.store.FullPath(objectPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if _, err := os.Stat(fullPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "File not found",
		})
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.File(fullPath)
}
