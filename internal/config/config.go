package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "deck"

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // start folder of the add-files prompt

	Volume           *float64 `koanf:"volume"`            // initial level 0.0-1.0 (default: 1.0)
	Repeat           *bool    `koanf:"repeat"`            // start with single-track repeat (default: false)
	PositionInterval string   `koanf:"position_interval"` // progress refresh, e.g. "50ms"
	SpeakerBuffer    string   `koanf:"speaker_buffer"`    // audio output buffer, e.g. "100ms"
	SampleRate       int      `koanf:"sample_rate"`       // output sample rate (default: 44100)

	// Fixed now-playing metadata, since tags are not read
	Placeholder PlaceholderConfig `koanf:"placeholder"`

	Desktop DesktopConfig `koanf:"desktop"`
}

// DesktopConfig controls desktop integration (Linux only).
type DesktopConfig struct {
	MPRIS         *bool `koanf:"mpris"`         // media keys and applets (default: true)
	Notifications bool  `koanf:"notifications"` // notify on track change (default: false)
}

// PlaceholderConfig holds the text shown in place of track metadata.
type PlaceholderConfig struct {
	Artist string `koanf:"artist"`
	Album  string `koanf:"album"`
	Cover  string `koanf:"cover"`
}

// PlaybackConfig is the playback section with defaults applied.
type PlaybackConfig struct {
	Volume           float64
	Repeat           bool
	PositionInterval time.Duration
	SpeakerBuffer    time.Duration
	SampleRate       int
}

// Load reads the default config files, then every path in extra. Default
// files are optional; an extra path that does not exist is an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	for _, path := range extra {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/deck/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback settings with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := PlaybackConfig{
		Volume:           1.0,
		PositionInterval: 50 * time.Millisecond,
		SpeakerBuffer:    100 * time.Millisecond,
		SampleRate:       44100,
	}

	if c.Volume != nil && *c.Volume >= 0 && *c.Volume <= 1 {
		cfg.Volume = *c.Volume
	}
	if c.Repeat != nil {
		cfg.Repeat = *c.Repeat
	}
	if d, err := time.ParseDuration(c.PositionInterval); err == nil && d >= 10*time.Millisecond {
		cfg.PositionInterval = d
	}
	if d, err := time.ParseDuration(c.SpeakerBuffer); err == nil && d > 0 && d <= time.Second {
		cfg.SpeakerBuffer = d
	}
	if c.SampleRate >= 8000 && c.SampleRate <= 192000 {
		cfg.SampleRate = c.SampleRate
	}

	return cfg
}

// GetPlaceholder returns the placeholder metadata with defaults applied.
func (c *Config) GetPlaceholder() PlaceholderConfig {
	p := c.Placeholder
	if p.Artist == "" {
		p.Artist = "Unknown Artist"
	}
	if p.Album == "" {
		p.Album = "Unknown Album"
	}
	if p.Cover == "" {
		p.Cover = "♫"
	}
	return p
}

// MPRISEnabled reports whether the MPRIS adapter should run.
func (c *Config) MPRISEnabled() bool {
	return c.Desktop.MPRIS == nil || *c.Desktop.MPRIS
}
