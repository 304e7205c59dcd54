// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stwalsh4118/hypescreen/internal/countdown"
	"github.com/stwalsh4118/hypescreen/internal/playlist"
	"github.com/stwalsh4118/hypescreen/internal/rotation"
	"github.com/stwalsh4118/hypescreen/internal/selection"
)

const (
	defaultServerPort      = 8080
	defaultServerHost      = "127.0.0.1"
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultLogLevel        = "info"
	defaultLogPretty       = false
	defaultPlaylistSource  = "https://raw.githubusercontent.com/moutella/Switch2HypeScreen/refs/heads/main/videolist.txt"
	defaultPlaylistMode    = string(playlist.ModeYouTube)
	defaultFetchTimeout    = 10 * time.Second
	defaultOffsetMode      = string(selection.OffsetThreshold)
	defaultOffsetThreshold = selection.DefaultOffsetThreshold
	defaultDwellPolicy     = string(rotation.DwellShortFull)
	defaultShortThreshold  = rotation.DefaultShortThreshold
	defaultFixedDwell      = rotation.DefaultFixedDwell
	defaultTransition      = time.Duration(0)
	defaultCountdownTarget = "2025-06-05T00:00:00"
	defaultUTCOffset       = "-03:00"
	defaultCountdownTick   = time.Second
	defaultCountdownLabel  = "Dia(s)"
	defaultLoadingText     = "Carregando vídeo..."
	defaultMediaBaseURL    = "/media/"
	envPrefix              = "HYPESCREEN"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Playlist  PlaylistConfig
	Rotation  RotationConfig
	Countdown CountdownConfig
	Display   DisplayConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// PlaylistConfig describes where the video list comes from and how to read it
type PlaylistConfig struct {
	// Source is an http(s) URL or a local file path
	Source string
	// Mode is "youtube" (URL references) or "local" (bare filenames)
	Mode         string
	FetchTimeout time.Duration
}

// RotationConfig holds selection and dwell settings
type RotationConfig struct {
	// OffsetMode is "threshold" or "always"
	OffsetMode      string
	OffsetThreshold int64
	// DwellPolicy is "short_full", "remaining" or "fixed"
	DwellPolicy    string
	ShortThreshold int64
	FixedDwell     time.Duration
	// Transition is the wipe window between entries, 0 disables it
	Transition time.Duration
}

// CountdownConfig holds the overlay countdown settings
type CountdownConfig struct {
	// Target is a wall-clock time in the "2006-01-02T15:04:05" layout
	Target string
	// UTCOffset is the fixed zone the target is expressed in, e.g. "-03:00"
	UTCOffset string
	Tick      time.Duration
	Label     string
}

// DisplayConfig holds rendering surface settings
type DisplayConfig struct {
	LoadingText string
	// MediaBaseURL prefixes local filenames in local mode
	MediaBaseURL string
	// MediaDir, when set, is served under /media for local mode
	MediaDir string
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is like Load but reads the given config file instead of searching for one
func LoadFrom(path string) (*Config, error) {
	// .env files are optional in production where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hypescreen")
	}

	// Environment variable settings
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (optional unless a path was given)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	// Logging defaults
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	// Playlist defaults
	v.SetDefault("playlist.source", defaultPlaylistSource)
	v.SetDefault("playlist.mode", defaultPlaylistMode)
	v.SetDefault("playlist.fetchtimeout", defaultFetchTimeout)

	// Rotation defaults
	v.SetDefault("rotation.offsetmode", defaultOffsetMode)
	v.SetDefault("rotation.offsetthreshold", defaultOffsetThreshold)
	v.SetDefault("rotation.dwellpolicy", defaultDwellPolicy)
	v.SetDefault("rotation.shortthreshold", defaultShortThreshold)
	v.SetDefault("rotation.fixeddwell", defaultFixedDwell)
	v.SetDefault("rotation.transition", defaultTransition)

	// Countdown defaults
	v.SetDefault("countdown.target", defaultCountdownTarget)
	v.SetDefault("countdown.utcoffset", defaultUTCOffset)
	v.SetDefault("countdown.tick", defaultCountdownTick)
	v.SetDefault("countdown.label", defaultCountdownLabel)

	// Display defaults
	v.SetDefault("display.loadingtext", defaultLoadingText)
	v.SetDefault("display.mediabaseurl", defaultMediaBaseURL)
	v.SetDefault("display.mediadir", "")
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	// Validate server port
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	// Validate timeout durations
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	// Validate playlist source
	if strings.TrimSpace(c.Playlist.Source) == "" {
		return errors.New("playlist source is required")
	}
	if !playlist.Mode(c.Playlist.Mode).Valid() {
		return fmt.Errorf("invalid playlist mode: %s (must be youtube or local)", c.Playlist.Mode)
	}
	if c.Playlist.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %v (must be > 0)", c.Playlist.FetchTimeout)
	}

	// Validate rotation policy
	if !selection.OffsetMode(c.Rotation.OffsetMode).Valid() {
		return fmt.Errorf("invalid offset mode: %s (must be threshold or always)", c.Rotation.OffsetMode)
	}
	if c.Rotation.OffsetThreshold <= 0 {
		return fmt.Errorf("invalid offset threshold: %d (must be > 0)", c.Rotation.OffsetThreshold)
	}
	if err := c.DwellPolicy().Validate(); err != nil {
		return err
	}
	if c.Rotation.Transition < 0 {
		return fmt.Errorf("invalid transition: %v (must be >= 0)", c.Rotation.Transition)
	}

	// Validate countdown
	if _, err := c.CountdownTarget(); err != nil {
		return err
	}
	if c.Countdown.Tick <= 0 {
		return fmt.Errorf("invalid countdown tick: %v (must be > 0)", c.Countdown.Tick)
	}

	return nil
}

// DwellPolicy builds the rotation dwell policy from the configuration
func (c *Config) DwellPolicy() rotation.DwellPolicy {
	return rotation.DwellPolicy{
		Mode:           rotation.DwellMode(c.Rotation.DwellPolicy),
		ShortThreshold: c.Rotation.ShortThreshold,
		Fixed:          c.Rotation.FixedDwell,
	}
}

// CountdownTarget resolves the configured target in its fixed UTC offset
func (c *Config) CountdownTarget() (time.Time, error) {
	return countdown.ParseTarget(c.Countdown.Target, c.Countdown.UTCOffset)
}
