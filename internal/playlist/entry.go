// Package playlist turns the plain-text video list resource into an ordered
// sequence of playable entries.
package playlist

// Mode selects how the reference field of a list line is interpreted
type Mode string

const (
	// ModeYouTube expects a full YouTube URL and keeps only the 11-character video ID
	ModeYouTube Mode = "youtube"

	// ModeLocal expects a bare filename of a local video file
	ModeLocal Mode = "local"
)

// Entry represents one schedulable playable unit
type Entry struct {
	// Reference is the video ID (youtube mode) or filename (local mode), never empty
	Reference string `json:"reference"`

	// DurationSeconds is the media length in seconds, 0 when unknown
	DurationSeconds int64 `json:"duration_seconds"`
}

// HasDuration reports whether the entry carries a known duration
func (e Entry) HasDuration() bool {
	return e.DurationSeconds > 0
}

// Valid reports whether m is a supported mode
func (m Mode) Valid() bool {
	return m == ModeYouTube || m == ModeLocal
}
