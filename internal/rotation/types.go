package rotation

import (
	"time"

	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

// State is the phase of the rotation state machine
type State string

const (
	// StateLoading means no entries have been delivered yet (or none are usable)
	StateLoading State = "loading"

	// StatePlaying means an entry is selected and the dwell timer is armed
	StatePlaying State = "playing"

	// StateTransitioning means a new entry was selected and the visual wipe window is open
	StateTransitioning State = "transitioning"

	// StateTornDown is terminal: the session ended and all timers are cancelled
	StateTornDown State = "torn_down"
)

// UnsetIndex marks the absence of a current entry
const UnsetIndex = -1

// Snapshot is a consistent copy of the rotation state.
// Index and StartOffset always come from the same selection.
type Snapshot struct {
	// State is the current phase of the state machine
	State State `json:"state"`

	// Index is the position of the current entry, UnsetIndex while loading
	Index int `json:"index"`

	// Entry is the current entry, nil while loading
	Entry *playlist.Entry `json:"entry,omitempty"`

	// StartOffset is the in-media offset in seconds playback should begin at
	StartOffset int64 `json:"start_offset_seconds"`

	// PendingTransition is true while a wipe is in progress
	PendingTransition bool `json:"pending_transition"`

	// EntryCount is the number of loaded entries
	EntryCount int `json:"entry_count"`

	// Rotations counts selections applied since load, including the first one
	Rotations int `json:"rotations"`

	// NextRotationAt is when the dwell timer fires, zero when no dwell timer is armed
	NextRotationAt time.Time `json:"next_rotation_at,omitempty"`
}

// HasEntry reports whether the snapshot carries a playable entry
func (s Snapshot) HasEntry() bool {
	return s.Entry != nil && (s.State == StatePlaying || s.State == StateTransitioning)
}
