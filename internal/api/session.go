// Package api exposes the display session to the kiosk rendering surface.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/hypescreen/internal/countdown"
	"github.com/stwalsh4118/hypescreen/internal/display"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
)

// Session is the part of a display session the handlers read from
type Session interface {
	ID() uuid.UUID
	View() display.View
	Rotation() rotation.Snapshot
	Countdown() countdown.Value
	Overlay() string
	Target() time.Time
	Entries() []playlist.Entry
	Skip() error
}

// ErrorResponse represents an error returned by the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
