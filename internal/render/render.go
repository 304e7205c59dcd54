// Package render builds the player source for the rendering surface from a
// reference and a start offset.
package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

const (
	youTubeEmbedBase = "https://www.youtube.com/embed/"

	// DefaultMediaBaseURL is where local media files are served from
	DefaultMediaBaseURL = "/media/"
)

// Kind tells the player which element to use
type Kind string

const (
	// KindEmbed is an iframe embed
	KindEmbed Kind = "embed"

	// KindVideo is a native video element
	KindVideo Kind = "video"
)

// Source is what the rendering surface needs to start playback
type Source struct {
	Kind               Kind   `json:"kind"`
	URL                string `json:"url"`
	Reference          string `json:"reference"`
	StartOffsetSeconds int64  `json:"start_offset_seconds"`
}

// Builder turns references into player sources for one deployment mode
type Builder struct {
	mode         playlist.Mode
	mediaBaseURL string
}

// NewBuilder creates a builder. mediaBaseURL is only used in local mode.
func NewBuilder(mode playlist.Mode, mediaBaseURL string) *Builder {
	if mediaBaseURL == "" {
		mediaBaseURL = DefaultMediaBaseURL
	}
	if !strings.HasSuffix(mediaBaseURL, "/") {
		mediaBaseURL += "/"
	}
	return &Builder{mode: mode, mediaBaseURL: mediaBaseURL}
}

// Build returns the player source for reference starting at startOffset seconds
func (b *Builder) Build(reference string, startOffset int64) Source {
	if startOffset < 0 {
		startOffset = 0
	}

	src := Source{
		Reference:          reference,
		StartOffsetSeconds: startOffset,
	}
	if b.mode == playlist.ModeLocal {
		src.Kind = KindVideo
		src.URL = b.localURL(reference, startOffset)
	} else {
		src.Kind = KindEmbed
		src.URL = YouTubeEmbedURL(reference, startOffset)
	}
	return src
}

// YouTubeEmbedURL returns an autoplaying, muted, looping embed URL for videoID.
// The start parameter is omitted when startOffset is 0.
func YouTubeEmbedURL(videoID string, startOffset int64) string {
	id := url.PathEscape(videoID)
	embed := fmt.Sprintf("%s%s?autoplay=1&rel=0&mute=1&loop=1&playlist=%s", youTubeEmbedBase, id, url.QueryEscape(videoID))
	if startOffset > 0 {
		embed += fmt.Sprintf("&start=%d", startOffset)
	}
	return embed
}

// localURL points at a served media file using a media fragment for the offset
func (b *Builder) localURL(filename string, startOffset int64) string {
	u := b.mediaBaseURL + url.PathEscape(filename)
	if startOffset > 0 {
		u += fmt.Sprintf("#t=%d", startOffset)
	}
	return u
}
