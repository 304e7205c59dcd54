package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
)

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status    string         `json:"status"`
	State     rotation.State `json:"state"`
	SessionID string         `json:"session_id"`
	Entries   int            `json:"entries"`
	Time      string         `json:"time"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	session Session
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(session Session) *HealthHandler {
	return &HealthHandler{session: session}
}

// Check handles the health check endpoint.
// A loading session is healthy; only a torn-down session reports unavailable.
func (h *HealthHandler) Check(c *gin.Context) {
	snap := h.session.Rotation()

	response := HealthResponse{
		Status:    "ok",
		State:     snap.State,
		SessionID: h.session.ID().String(),
		Entries:   snap.EntryCount,
		Time:      time.Now().UTC().Format(time.RFC3339),
	}

	if snap.State == rotation.StateTornDown {
		response.Status = "stopped"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetupHealthRoutes registers health check routes
func SetupHealthRoutes(apiGroup *gin.RouterGroup, session Session) {
	handler := NewHealthHandler(session)
	apiGroup.GET("/health", handler.Check)
}
