// Package display runs one ambient display session: it fetches and parses the
// video list, drives the rotation scheduler and keeps the countdown overlay
// current. Tearing the session down stops every timer it owns.
package display

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/stwalsh4118/hypescreen/internal/countdown"
	"github.com/stwalsh4118/hypescreen/internal/logger"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/render"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
	"github.com/stwalsh4118/hypescreen/internal/selection"
	"github.com/stwalsh4118/hypescreen/internal/source"
)

const (
	// DefaultLoadingText is shown while no entry is playing
	DefaultLoadingText = "Carregando vídeo..."

	// DefaultCountdownLabel follows the day count in the overlay
	DefaultCountdownLabel = "Dia(s)"

	defaultCountdownTick = time.Second
)

// Config holds everything a session needs
type Config struct {
	Fetcher  source.Fetcher
	Parser   *playlist.Parser
	Selector *selection.Selector
	Builder  *render.Builder
	Rotation rotation.Config

	// CountdownTarget is the fixed instant the overlay counts down to
	CountdownTarget time.Time
	CountdownLabel  string
	CountdownTick   time.Duration

	LoadingText string
}

// Session is a single display session
type Session struct {
	id        uuid.UUID
	clock     clockwork.Clock
	fetcher   source.Fetcher
	parser    *playlist.Parser
	builder   *render.Builder
	scheduler *rotation.Scheduler

	target      time.Time
	label       string
	tick        time.Duration
	loadingText string

	mu        sync.RWMutex
	started   bool
	countdown countdown.Value
	fetchErr  error
}

// NewSession builds a session in the Loading state
func NewSession(cfg Config, clock clockwork.Clock) (*Session, error) {
	if cfg.Fetcher == nil {
		return nil, ErrNoFetcher
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Parser == nil {
		cfg.Parser = playlist.NewParser(playlist.ModeYouTube)
	}
	if cfg.Builder == nil {
		cfg.Builder = render.NewBuilder(cfg.Parser.Mode(), "")
	}
	if cfg.CountdownLabel == "" {
		cfg.CountdownLabel = DefaultCountdownLabel
	}
	if cfg.CountdownTick <= 0 {
		cfg.CountdownTick = defaultCountdownTick
	}
	if cfg.LoadingText == "" {
		cfg.LoadingText = DefaultLoadingText
	}

	s := &Session{
		id:          uuid.New(),
		clock:       clock,
		fetcher:     cfg.Fetcher,
		parser:      cfg.Parser,
		builder:     cfg.Builder,
		target:      cfg.CountdownTarget,
		label:       cfg.CountdownLabel,
		tick:        cfg.CountdownTick,
		loadingText: cfg.LoadingText,
	}
	s.scheduler = rotation.NewScheduler(cfg.Selector, cfg.Rotation, clock)
	return s, nil
}

// Run starts the session and blocks until ctx is cancelled and every
// session goroutine has stopped.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	logger.Log.Info().
		Str("session_id", s.id.String()).
		Str("mode", string(s.parser.Mode())).
		Time("countdown_target", s.target).
		Msg("Display session starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.scheduler.Run(gctx)
	})
	g.Go(func() error {
		s.runCountdown(gctx)
		return nil
	})
	g.Go(func() error {
		s.loadEntries(gctx)
		return nil
	})

	err := g.Wait()

	logger.Log.Info().
		Str("session_id", s.id.String()).
		Msg("Display session torn down")
	return err
}

// loadEntries performs the one-shot list fetch and hands the result to the scheduler.
// A failed fetch leaves the session loading; a result arriving after teardown is dropped.
func (s *Session) loadEntries(ctx context.Context) {
	text, err := s.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.mu.Lock()
		s.fetchErr = err
		s.mu.Unlock()

		logger.Log.Error().
			Err(err).
			Str("session_id", s.id.String()).
			Msg("Failed to fetch video list, staying in loading state")
		return
	}

	entries := s.parser.Parse(text)

	if err := s.scheduler.Load(ctx, entries); err != nil {
		logger.Log.Debug().
			Err(err).
			Str("session_id", s.id.String()).
			Msg("Discarding video list delivered after teardown")
		return
	}

	logger.Log.Info().
		Str("session_id", s.id.String()).
		Int("entries", len(entries)).
		Msg("Video list fetched")
}

// runCountdown recomputes the overlay value on every tick
func (s *Session) runCountdown(ctx context.Context) {
	ticker := s.clock.NewTicker(s.tick)
	defer ticker.Stop()

	s.updateCountdown(s.clock.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.Chan():
			s.updateCountdown(now)
		}
	}
}

func (s *Session) updateCountdown(now time.Time) {
	value := countdown.Tick(now, s.target)
	s.mu.Lock()
	s.countdown = value
	s.mu.Unlock()
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Target returns the countdown target
func (s *Session) Target() time.Time {
	return s.target
}

// Countdown returns the most recently computed countdown value
func (s *Session) Countdown() countdown.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countdown
}

// Overlay returns the formatted countdown text
func (s *Session) Overlay() string {
	return s.Countdown().Format(s.label)
}

// Rotation returns the current rotation snapshot
func (s *Session) Rotation() rotation.Snapshot {
	return s.scheduler.Snapshot()
}

// Entries returns the loaded entries, empty while loading
func (s *Session) Entries() []playlist.Entry {
	return s.scheduler.Entries()
}

// Skip requests an immediate rotation
func (s *Session) Skip() error {
	return s.scheduler.Skip()
}

// Done is closed once the rotation scheduler has been torn down
func (s *Session) Done() <-chan struct{} {
	return s.scheduler.Done()
}

// View is the rendering contract consumed by the kiosk page
type View struct {
	SessionID         string          `json:"session_id"`
	State             rotation.State  `json:"state"`
	Loading           bool            `json:"loading"`
	LoadingText       string          `json:"loading_text,omitempty"`
	Source            *render.Source  `json:"source,omitempty"`
	DurationSeconds   int64           `json:"duration_seconds"`
	PendingTransition bool            `json:"pending_transition"`
	NextRotationAt    *time.Time      `json:"next_rotation_at,omitempty"`
	Countdown         countdown.Value `json:"countdown"`
	Overlay           string          `json:"overlay"`
	FetchError        string          `json:"fetch_error,omitempty"`
}

// View assembles the current rendering contract
func (s *Session) View() View {
	snap := s.scheduler.Snapshot()
	value := s.Countdown()

	view := View{
		SessionID:         s.id.String(),
		State:             snap.State,
		PendingTransition: snap.PendingTransition,
		Countdown:         value,
		Overlay:           value.Format(s.label),
	}

	s.mu.RLock()
	if s.fetchErr != nil {
		view.FetchError = s.fetchErr.Error()
	}
	s.mu.RUnlock()

	if !snap.HasEntry() {
		view.Loading = true
		view.LoadingText = s.loadingText
		return view
	}

	src := s.builder.Build(snap.Entry.Reference, snap.StartOffset)
	view.Source = &src
	view.DurationSeconds = snap.Entry.DurationSeconds
	if !snap.NextRotationAt.IsZero() {
		next := snap.NextRotationAt
		view.NextRotationAt = &next
	}
	return view
}

// IsTornDown reports whether err means the session is gone
func IsTornDown(err error) bool {
	return errors.Is(err, rotation.ErrTornDown)
}
