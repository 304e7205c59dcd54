// Package rotation runs the timed state machine that keeps replacing the
// current entry with a newly selected one.
package rotation

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/hypescreen/internal/logger"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/selection"
)

// Config holds scheduler behaviour settings
type Config struct {
	// Dwell computes how long each entry stays selected
	Dwell DwellPolicy

	// Transition is the wipe window between selections; 0 rotates directly
	Transition time.Duration

	// OnChange, if set, receives a snapshot after every applied state change.
	// It runs on the scheduler goroutine and must not block.
	OnChange func(Snapshot)
}

// Scheduler owns the rotation state of one session.
// All mutations happen on the goroutine running Run; readers get copies via Snapshot.
type Scheduler struct {
	clock    clockwork.Clock
	selector *selection.Selector
	config   Config

	loadCh chan []playlist.Entry
	skipCh chan struct{}
	done   chan struct{}

	// Owned by the Run goroutine
	dwellTimer      clockwork.Timer
	transitionTimer clockwork.Timer

	mu      sync.RWMutex
	running bool
	state   rotationState
}

// rotationState is the mutable session state guarded by Scheduler.mu
type rotationState struct {
	phase             State
	entries           []playlist.Entry
	index             int
	startOffset       int64
	pendingTransition bool
	rotations         int
	nextRotationAt    time.Time
}

// NewScheduler creates a scheduler in the Loading state
func NewScheduler(selector *selection.Selector, cfg Config, clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if selector == nil {
		selector = selection.NewSelector()
	}
	if cfg.Dwell.Validate() != nil {
		cfg.Dwell = DefaultDwellPolicy()
	}
	if cfg.Transition < 0 {
		cfg.Transition = 0
	}

	return &Scheduler{
		clock:    clock,
		selector: selector,
		config:   cfg,
		loadCh:   make(chan []playlist.Entry, 1),
		skipCh:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		state: rotationState{
			phase: StateLoading,
			index: UnsetIndex,
		},
	}
}

// Run drives the state machine until ctx is cancelled, then tears the
// session down: pending timers are stopped and no further state change occurs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state.phase == StateTornDown {
		s.mu.Unlock()
		return ErrTornDown
	}
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer s.teardown()

	logger.Log.Info().
		Str("dwell_mode", string(s.config.Dwell.Mode)).
		Dur("fixed_dwell", s.config.Dwell.Fixed).
		Dur("transition", s.config.Transition).
		Str("offset_mode", string(s.selector.Mode())).
		Msg("Rotation scheduler started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case entries := <-s.loadCh:
			if ctx.Err() != nil {
				return nil
			}
			s.handleLoad(entries)
		case <-timerChan(s.dwellTimer):
			s.dwellTimer = nil
			// Cancellation wins over a timer that fired in the same instant
			if ctx.Err() != nil {
				return nil
			}
			s.rotate("dwell")
		case <-timerChan(s.transitionTimer):
			s.transitionTimer = nil
			if ctx.Err() != nil {
				return nil
			}
			s.finishTransition()
		case <-s.skipCh:
			if ctx.Err() != nil {
				return nil
			}
			s.handleSkip()
		}
	}
}

// Load delivers the parsed entry list. Only the first non-empty list moves
// the scheduler out of Loading; later lists are ignored. A list delivered
// after teardown is discarded.
func (s *Scheduler) Load(ctx context.Context, entries []playlist.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-s.done:
		return ErrTornDown
	default:
	}

	// Entries are immutable for the session
	owned := make([]playlist.Entry, len(entries))
	copy(owned, entries)

	select {
	case s.loadCh <- owned:
		return nil
	case <-s.done:
		return ErrTornDown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Skip requests an immediate rotation, handled exactly like a dwell-timer fire
func (s *Scheduler) Skip() error {
	s.mu.RLock()
	phase := s.state.phase
	s.mu.RUnlock()

	switch phase {
	case StateTornDown:
		return ErrTornDown
	case StatePlaying:
	default:
		return ErrNotPlaying
	}

	select {
	case s.skipCh <- struct{}{}:
	default:
		// A skip is already queued
	}
	return nil
}

// Snapshot returns a consistent copy of the current rotation state
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Entries returns a copy of the loaded entries
func (s *Scheduler) Entries() []playlist.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]playlist.Entry, len(s.state.entries))
	copy(out, s.state.entries)
	return out
}

// Done is closed once the scheduler has been torn down
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// handleLoad applies the first non-empty entry list
func (s *Scheduler) handleLoad(entries []playlist.Entry) {
	s.mu.RLock()
	phase := s.state.phase
	s.mu.RUnlock()

	if phase != StateLoading {
		logger.Log.Debug().
			Int("entries", len(entries)).
			Str("state", string(phase)).
			Msg("Ignoring entry list delivered after load")
		return
	}

	if len(entries) == 0 {
		logger.Log.Warn().Msg("Delivered entry list is empty, staying in loading state")
		return
	}

	pick := s.selector.SelectNext(entries, selection.NoPrevious)
	interval := s.config.Dwell.Interval(entries[pick.Index], pick.StartOffset)

	// Arm before publishing so observers of Playing always find a pending timer
	s.armDwell(interval)

	s.mu.Lock()
	s.state.entries = entries
	s.state.index = pick.Index
	s.state.startOffset = pick.StartOffset
	s.state.phase = StatePlaying
	s.state.rotations++
	s.state.nextRotationAt = s.clock.Now().Add(interval)
	s.mu.Unlock()

	logger.Log.Info().
		Int("entries", len(entries)).
		Int("index", pick.Index).
		Str("reference", entries[pick.Index].Reference).
		Int64("start_offset", pick.StartOffset).
		Dur("dwell", interval).
		Msg("Entry list loaded, playback started")

	s.notify()
}

// handleSkip performs a manual rotation if still playing
func (s *Scheduler) handleSkip() {
	s.mu.RLock()
	phase := s.state.phase
	s.mu.RUnlock()

	if phase != StatePlaying {
		return
	}

	stopTimer(s.dwellTimer)
	s.dwellTimer = nil
	s.rotate("skip")
}

// rotate selects the next entry and either re-arms the dwell timer or opens the transition window
func (s *Scheduler) rotate(trigger string) {
	s.mu.RLock()
	entries := s.state.entries
	previous := s.state.index
	s.mu.RUnlock()

	// Never forward an empty list to the selector
	if len(entries) == 0 {
		s.mu.Lock()
		s.state.phase = StateLoading
		s.state.index = UnsetIndex
		s.state.startOffset = 0
		s.state.pendingTransition = false
		s.state.nextRotationAt = time.Time{}
		s.mu.Unlock()

		logger.Log.Warn().
			Str("trigger", trigger).
			Msg("Entry list is empty, falling back to loading state")
		s.notify()
		return
	}

	pick := s.selector.SelectNext(entries, previous)
	transitioning := s.config.Transition > 0

	var interval time.Duration
	if transitioning {
		s.transitionTimer = s.clock.NewTimer(s.config.Transition)
	} else {
		interval = s.config.Dwell.Interval(entries[pick.Index], pick.StartOffset)
		s.armDwell(interval)
	}

	s.mu.Lock()
	s.state.index = pick.Index
	s.state.startOffset = pick.StartOffset
	s.state.rotations++
	if transitioning {
		s.state.phase = StateTransitioning
		s.state.pendingTransition = true
		s.state.nextRotationAt = time.Time{}
	} else {
		s.state.phase = StatePlaying
		s.state.nextRotationAt = s.clock.Now().Add(interval)
	}
	s.mu.Unlock()

	logger.Log.Info().
		Str("trigger", trigger).
		Int("previous_index", previous).
		Int("index", pick.Index).
		Str("reference", entries[pick.Index].Reference).
		Int64("start_offset", pick.StartOffset).
		Bool("transition", transitioning).
		Dur("dwell", interval).
		Msg("Rotated to next entry")

	s.notify()
}

// finishTransition closes the wipe window and arms the dwell timer for the new entry
func (s *Scheduler) finishTransition() {
	s.mu.Lock()
	if s.state.phase != StateTransitioning || len(s.state.entries) == 0 {
		s.mu.Unlock()
		return
	}
	entry := s.state.entries[s.state.index]
	interval := s.config.Dwell.Interval(entry, s.state.startOffset)
	s.armDwell(interval)
	s.state.phase = StatePlaying
	s.state.pendingTransition = false
	s.state.nextRotationAt = s.clock.Now().Add(interval)
	s.mu.Unlock()

	logger.Log.Debug().
		Str("reference", entry.Reference).
		Dur("dwell", interval).
		Msg("Transition finished")

	s.notify()
}

// armDwell replaces any pending dwell timer
func (s *Scheduler) armDwell(interval time.Duration) {
	stopTimer(s.dwellTimer)
	s.dwellTimer = s.clock.NewTimer(interval)
}

// teardown cancels every pending timer and moves to the terminal state
func (s *Scheduler) teardown() {
	stopTimer(s.dwellTimer)
	stopTimer(s.transitionTimer)
	s.dwellTimer = nil
	s.transitionTimer = nil

	s.mu.Lock()
	s.state.phase = StateTornDown
	s.state.pendingTransition = false
	s.state.nextRotationAt = time.Time{}
	s.running = false
	s.mu.Unlock()

	close(s.done)

	logger.Log.Info().Msg("Rotation scheduler torn down")
	s.notify()
}

// notify hands the current snapshot to the OnChange hook
func (s *Scheduler) notify() {
	if s.config.OnChange == nil {
		return
	}
	s.config.OnChange(s.Snapshot())
}

func (s *Scheduler) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:             s.state.phase,
		Index:             UnsetIndex,
		StartOffset:       s.state.startOffset,
		PendingTransition: s.state.pendingTransition,
		EntryCount:        len(s.state.entries),
		Rotations:         s.state.rotations,
		NextRotationAt:    s.state.nextRotationAt,
	}
	if s.state.index >= 0 && s.state.index < len(s.state.entries) {
		entry := s.state.entries[s.state.index]
		snap.Index = s.state.index
		snap.Entry = &entry
	}
	return snap
}

// timerChan returns the timer channel, or nil so a select case never fires
func timerChan(t clockwork.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.Chan()
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}
