package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/voice"
)

// VoiceRecorder counts routed voice commands
type VoiceRecorder interface {
	VoiceCommand(target string)
}

// VoiceHandler routes speech transcripts to navigation targets
type VoiceHandler struct {
	recorder VoiceRecorder
	config   *config.Config
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(recorder VoiceRecorder, cfg *config.Config) *VoiceHandler {
	return &VoiceHandler{
		recorder: recorder,
		config:   cfg,
	}
}

// VoiceCommandRequest carries one recognized utterance
type VoiceCommandRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// Command maps a transcript to where the client should navigate
func (h *VoiceHandler) Command(c *gin.Context) {
	if !h.config.Voice.Enabled {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Speech recognition not supported.",
			"enabled": false,
		})
		return
	}

	var req VoiceCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result := voice.Route(strings.TrimSpace(req.Transcript))
	h.recorder.VoiceCommand(result.Target)

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}
