package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/hypescreen/internal/countdown"
	"github.com/stwalsh4118/hypescreen/internal/logger"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
)

// CountdownResponse represents the countdown overlay value
type CountdownResponse struct {
	countdown.Value
	Overlay string    `json:"overlay"`
	Target  time.Time `json:"target"`
	Reached bool      `json:"reached"`
}

// EntriesResponse represents the loaded entry list
type EntriesResponse struct {
	Entries []playlist.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// SkipResponse is returned when a manual rotation was accepted
type SkipResponse struct {
	Status string `json:"status"`
}

// DisplayHandler serves the rendering contract and countdown
type DisplayHandler struct {
	session Session
}

// NewDisplayHandler creates a new display handler instance
func NewDisplayHandler(session Session) *DisplayHandler {
	return &DisplayHandler{session: session}
}

// GetDisplay handles GET /api/display
func (h *DisplayHandler) GetDisplay(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.session.View())
}

// GetCountdown handles GET /api/countdown
func (h *DisplayHandler) GetCountdown(c *gin.Context) {
	value := h.session.Countdown()
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, CountdownResponse{
		Value:   value,
		Overlay: h.session.Overlay(),
		Target:  h.session.Target(),
		Reached: value.IsZero(),
	})
}

// GetEntries handles GET /api/entries
func (h *DisplayHandler) GetEntries(c *gin.Context) {
	entries := h.session.Entries()
	c.JSON(http.StatusOK, EntriesResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Next handles POST /api/display/next
func (h *DisplayHandler) Next(c *gin.Context) {
	err := h.session.Skip()
	switch {
	case err == nil:
		logger.Log.Info().
			Str("session_id", h.session.ID().String()).
			Msg("Manual rotation requested")
		c.JSON(http.StatusAccepted, SkipResponse{Status: "rotating"})
	case errors.Is(err, rotation.ErrNotPlaying):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "not_playing",
			Message: "Display is not playing an entry",
		})
	case errors.Is(err, rotation.ErrTornDown):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "session_ended",
			Message: "Display session has ended",
		})
	default:
		logger.Log.Error().Err(err).Msg("Manual rotation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to rotate display",
		})
	}
}

// SetupDisplayRoutes registers display routes
func SetupDisplayRoutes(apiGroup *gin.RouterGroup, session Session) {
	handler := NewDisplayHandler(session)

	apiGroup.GET("/display", handler.GetDisplay)
	apiGroup.POST("/display/next", handler.Next)
	apiGroup.GET("/countdown", handler.GetCountdown)
	apiGroup.GET("/entries", handler.GetEntries)
}
