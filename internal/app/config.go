package app

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ConfigDir returns ~/.config/chime/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chime"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

// LoadDotenv loads env vars from ./.env and ~/.config/chime/.env, best effort.
// Existing process env always wins; missing files are not an error.
func LoadDotenv() {
	_ = godotenv.Load()
	if dir, err := ConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
}

const defaultConfig = `# chime configuration
# Run: chime --help

# Optional: explicit notification sound file (wav, mp3 or ogg).
# Can also be set via CHIME_SOUND.
# sound_path: ~/.config/chime/chime.wav

# Optional: base directory searched for chime.wav / chime.mp3.
# Can also be set via CHIME_SOUND_DIR.
# sound_dir: ~/sounds

# Suffix token that triggers the advisory block on prompt submission.
# Can also be set via CHIME_TRIGGER.
# trigger_token: "-u"

# Advisory text injected when the trigger fires. Defaults to the built-in
# ultrathink instruction.
# advisory: |
#   Think deeply about this request before answering.

# Per-strategy playback timeout in milliseconds.
# attempt_timeout_ms: 3000

# Disable all playback and notifications. Can also be set via CHIME_DISABLED.
# disabled: false

# Append-only diagnostic log. Write failures are ignored.
# debug_log: ~/.config/chime/chime.log
`
