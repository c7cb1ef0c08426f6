package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	SoundPath        string `yaml:"sound_path"`
	SoundDir         string `yaml:"sound_dir"`
	TriggerToken     string `yaml:"trigger_token"`
	Advisory         string `yaml:"advisory"`
	AttemptTimeoutMS int    `yaml:"attempt_timeout_ms"`
	Disabled         bool   `yaml:"disabled"`
	DebugLog         string `yaml:"debug_log"`
}

// PlaybackSettings are effective runtime values used by the notification player.
type PlaybackSettings struct {
	SoundPath      string        `json:"sound_path,omitempty"`
	SoundDir       string        `json:"sound_dir,omitempty"`
	AttemptTimeout time.Duration `json:"attempt_timeout"`
	Disabled       bool          `json:"disabled"`
	DebugLog       string        `json:"debug_log,omitempty"`
}

const (
	defaultTriggerToken = "-u"

	defaultAttemptTimeoutMS = 3000
	maxAttemptTimeoutMS     = 10000
)

// EffectivePlaybackSettings returns validated playback settings with defaults.
// Env vars override config.yaml; invalid or missing values fall back to
// safe defaults. The per-attempt timeout keeps a hung playback mechanism
// from stalling the hook pipeline.
func EffectivePlaybackSettings() PlaybackSettings {
	cfg := PlaybackSettings{
		AttemptTimeout: defaultAttemptTimeoutMS * time.Millisecond,
	}

	s, err := LoadSettings()
	if err != nil {
		s = Settings{}
	}

	cfg.SoundPath = s.SoundPath
	if env := os.Getenv("CHIME_SOUND"); env != "" {
		cfg.SoundPath = env
	}

	cfg.SoundDir = s.SoundDir
	if env := os.Getenv("CHIME_SOUND_DIR"); env != "" {
		cfg.SoundDir = env
	}

	if s.AttemptTimeoutMS > 0 {
		ms := s.AttemptTimeoutMS
		if ms > maxAttemptTimeoutMS {
			ms = maxAttemptTimeoutMS
		}
		cfg.AttemptTimeout = time.Duration(ms) * time.Millisecond
	}

	cfg.Disabled = s.Disabled
	if env, ok := os.LookupEnv("CHIME_DISABLED"); ok {
		cfg.Disabled = ParseBoolFlag(env)
	}

	cfg.DebugLog = s.DebugLog
	if env := os.Getenv("CHIME_DEBUG_LOG"); env != "" {
		cfg.DebugLog = env
	}

	return cfg
}

// TriggerToken returns the suffix token that requests advisory injection.
// Precedence: CHIME_TRIGGER env, then config.yaml, then the built-in default.
func TriggerToken() string {
	if env := strings.TrimSpace(os.Getenv("CHIME_TRIGGER")); env != "" {
		return env
	}
	if s, err := LoadSettings(); err == nil && strings.TrimSpace(s.TriggerToken) != "" {
		return strings.TrimSpace(s.TriggerToken)
	}
	return defaultTriggerToken
}

// AdvisoryText returns the advisory block injected on the trigger suffix.
// The config.yaml `advisory` key overrides the built-in fallback text.
func AdvisoryText(fallback string) string {
	if s, err := LoadSettings(); err == nil && strings.TrimSpace(s.Advisory) != "" {
		return s.Advisory
	}
	return fallback
}

// ParseBoolFlag interprets a boolean-like env value. Anything in
// {1, true, yes, on} enables the flag, case-insensitively; everything
// else (including empty) disables it.
func ParseBoolFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load singleton for config.
//
//nolint:gochecknoglobals // sync.Once singleton is intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error
)

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/chime/config.yaml
// 2) /etc/chime/config.yaml
// 3) ./config.yaml (lowest priority; allows repo-local overrides if desired)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		// 1) User config (~/.config/chime/config.yaml)
		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		if s, err := loadSettingsFile(filepath.Join(dir, "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 2) /etc
		if s, err := loadSettingsFile(filepath.Join(string(os.PathSeparator), "etc", "chime", "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 3) Local ./config.yaml (lowest priority)
		if s, err := loadSettingsFile("config.yaml"); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}
	})

	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
