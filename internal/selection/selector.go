// Package selection picks the next entry to show and the offset playback
// should start at. It holds no timers and no session state.
package selection

import (
	"math/rand/v2"

	"github.com/stwalsh4118/hypescreen/internal/playlist"
)

// NoPrevious is passed as the previous index when nothing has been shown yet
const NoPrevious = -1

const (
	// DefaultOffsetThreshold is the duration from which a random start offset is drawn in threshold mode
	DefaultOffsetThreshold int64 = 300

	// rejectionLimit is the largest entry count still served by rejection sampling.
	// Larger lists draw from n-1 candidates and skip over the excluded index.
	rejectionLimit = 64
)

// OffsetMode controls how the start offset of a selected entry is derived
type OffsetMode string

const (
	// OffsetThreshold draws a random offset only for media at or above the threshold
	OffsetThreshold OffsetMode = "threshold"

	// OffsetAlways draws a random offset for any media with a known duration
	OffsetAlways OffsetMode = "always"
)

// Valid reports whether m is a supported offset mode
func (m OffsetMode) Valid() bool {
	return m == OffsetThreshold || m == OffsetAlways
}

// Rand is the source of uniform draws used by the selector.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniformly distributed int in [0, n). n is always > 0.
	IntN(n int) int
}

// Pick is the outcome of one selection
type Pick struct {
	Index       int
	StartOffset int64
}

// Selector picks entries pseudo-randomly without immediate repetition
type Selector struct {
	rng       Rand
	mode      OffsetMode
	threshold int64
}

// Option configures a Selector
type Option func(*Selector)

// WithRand injects the randomness source
func WithRand(rng Rand) Option {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithOffsetMode sets the start offset policy. Invalid modes are ignored.
func WithOffsetMode(mode OffsetMode) Option {
	return func(s *Selector) {
		if mode.Valid() {
			s.mode = mode
		}
	}
}

// WithOffsetThreshold sets the threshold used by OffsetThreshold mode
func WithOffsetThreshold(seconds int64) Option {
	return func(s *Selector) {
		if seconds > 0 {
			s.threshold = seconds
		}
	}
}

// NewSelector creates a selector. By default it uses the global math/rand/v2
// source and threshold mode with a 300 second threshold.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		rng:       globalRand{},
		mode:      OffsetThreshold,
		threshold: DefaultOffsetThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the configured offset mode
func (s *Selector) Mode() OffsetMode {
	return s.mode
}

// SelectNext picks the next index and its start offset.
// entries must not be empty; the caller guards that.
// With a single entry the index is always 0. Otherwise the returned index
// never equals previous.
func (s *Selector) SelectNext(entries []playlist.Entry, previous int) Pick {
	index := s.nextIndex(len(entries), previous)
	return Pick{
		Index:       index,
		StartOffset: s.StartOffset(entries[index]),
	}
}

// nextIndex draws an index in [0, n) different from previous when n > 1
func (s *Selector) nextIndex(n, previous int) int {
	if n == 1 {
		return 0
	}

	// A previous index outside the range excludes nothing
	if previous < 0 || previous >= n {
		return s.rng.IntN(n)
	}

	if n > rejectionLimit {
		// Draw among the n-1 remaining candidates and step over the excluded slot
		idx := s.rng.IntN(n - 1)
		if idx >= previous {
			idx++
		}
		return idx
	}

	for {
		idx := s.rng.IntN(n)
		if idx != previous {
			return idx
		}
	}
}

// StartOffset derives the in-media start offset for entry under the configured mode
func (s *Selector) StartOffset(entry playlist.Entry) int64 {
	duration := entry.DurationSeconds
	if duration <= 0 {
		return 0
	}

	switch s.mode {
	case OffsetAlways:
		return int64(s.rng.IntN(int(duration)))
	default:
		if duration >= s.threshold {
			return int64(s.rng.IntN(int(duration)))
		}
		return 0
	}
}

// globalRand draws from the math/rand/v2 top-level source
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
