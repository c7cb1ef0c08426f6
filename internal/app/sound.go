package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// soundPathOverrideMu and soundPathOverride implement a mutex-protected
// process-wide override for the CLI --sound flag.
//
//nolint:gochecknoglobals // RWMutex override is intentional process-wide state
var (
	soundPathOverrideMu sync.RWMutex
	soundPathOverride   string
)

// SetSoundPathOverride sets a process-wide sound path override.
// Intended for CLI flag support (e.g. --sound).
func SetSoundPathOverride(path string) {
	soundPathOverrideMu.Lock()
	soundPathOverride = path
	soundPathOverrideMu.Unlock()
}

func getSoundPathOverride() string {
	soundPathOverrideMu.RLock()
	v := soundPathOverride
	soundPathOverrideMu.RUnlock()
	return v
}

// ExplicitSoundPath resolves an explicitly configured sound file, if any.
// Order of precedence:
// 1) CLI override (e.g. --sound)
// 2) Environment variable: CHIME_SOUND
// 3) config.yaml: sound_path
// Returns "" when nothing is explicitly configured; candidate-path
// discovery is then the caller's fallback.
func ExplicitSoundPath() string {
	if override := getSoundPathOverride(); override != "" {
		return ExpandHome(override)
	}
	if envPath := os.Getenv("CHIME_SOUND"); envPath != "" {
		return ExpandHome(envPath)
	}
	if cfg, err := LoadSettings(); err == nil && cfg.SoundPath != "" {
		return ExpandHome(cfg.SoundPath)
	}
	return ""
}

// ResolveSoundPathDetailed returns the explicit sound path along with the
// source of that decision. This is for debugging/reporting; normal code
// should use ExplicitSoundPath.
func ResolveSoundPathDetailed() (path string, source string) {
	if override := getSoundPathOverride(); override != "" {
		return ExpandHome(override), "cli(--sound)"
	}
	if envPath := os.Getenv("CHIME_SOUND"); envPath != "" {
		return ExpandHome(envPath), "env(CHIME_SOUND)"
	}
	if cfg, err := LoadSettings(); err == nil && cfg.SoundPath != "" {
		return ExpandHome(cfg.SoundPath), "config(sound_path)"
	}
	return "", "discovery"
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// DefaultDebugLogPath returns ~/.config/chime/chime.log.
func DefaultDebugLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "chime.log"), nil
}
