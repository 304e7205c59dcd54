package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stwalsh4118/hypescreen/internal/config"
	"github.com/stwalsh4118/hypescreen/internal/display"
	"github.com/stwalsh4118/hypescreen/internal/logger"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/render"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
	"github.com/stwalsh4118/hypescreen/internal/selection"
	"github.com/stwalsh4118/hypescreen/internal/server"
	"github.com/stwalsh4118/hypescreen/internal/source"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Pretty)

	session, err := newSession(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create display session")
	}

	srv := server.New(cfg, session)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Log.Info().Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server error")
	}

	// Start returns as soon as the listener closes; let Shutdown finish
	<-shutdownDone
}

// newSession wires the list source, parser, selector and scheduler from configuration
func newSession(cfg *config.Config) (*display.Session, error) {
	fetcher, err := source.New(cfg.Playlist.Source, cfg.Playlist.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create list source: %w", err)
	}

	target, err := cfg.CountdownTarget()
	if err != nil {
		return nil, err
	}

	mode := playlist.Mode(cfg.Playlist.Mode)
	selector := selection.NewSelector(
		selection.WithOffsetMode(selection.OffsetMode(cfg.Rotation.OffsetMode)),
		selection.WithOffsetThreshold(cfg.Rotation.OffsetThreshold),
	)

	return display.NewSession(display.Config{
		Fetcher:  fetcher,
		Parser:   playlist.NewParser(mode),
		Selector: selector,
		Builder:  render.NewBuilder(mode, cfg.Display.MediaBaseURL),
		Rotation: rotation.Config{
			Dwell:      cfg.DwellPolicy(),
			Transition: cfg.Rotation.Transition,
		},
		CountdownTarget: target,
		CountdownLabel:  cfg.Countdown.Label,
		CountdownTick:   cfg.Countdown.Tick,
		LoadingText:     cfg.Display.LoadingText,
	}, nil)
}
