package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
	"github.com/dotcommander/chime/internal/sound"
)

// NewDoctorCmd creates the doctor command: reports the resolved sound
// path and its source, the strategy chain, and whether the Claude Code
// hooks are installed.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, sound resolution and hook installation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.EffectivePlaybackSettings()

			explicitPath, source := app.ResolveSoundPathDetailed()

			cwd, _ := os.Getwd()
			configDir, _ := app.ConfigDir()
			resolved, found := sound.Locate(explicitPath, app.ExpandHome(cfg.SoundDir), cwd, configDir)
			if found && explicitPath != "" && resolved != explicitPath {
				// Explicit path missing on disk; discovery found a fallback.
				source = "discovery"
			}

			strategies := make([]string, 0, 3)
			for _, s := range sound.DefaultStrategies() {
				strategies = append(strategies, s.Name())
			}

			hooksInstalled := false
			if settings, err := readSettings(claudeSettingsPath()); err == nil {
				if hooksObj, ok := settings["hooks"].(map[string]any); ok {
					for _, eventName := range chimeHookEventNames() {
						if entries, ok := hooksObj[eventName].([]any); ok && hasChimeHook(entries) {
							hooksInstalled = true
							break
						}
					}
				}
			}

			type resp struct {
				ConfigDir      string   `json:"config_dir"`
				SoundPath      string   `json:"sound_path,omitempty"`
				SoundSource    string   `json:"sound_source"`
				SoundFound     bool     `json:"sound_found"`
				Disabled       bool     `json:"disabled"`
				TriggerToken   string   `json:"trigger_token"`
				AttemptTimeout string   `json:"attempt_timeout"`
				Strategies     []string `json:"strategies"`
				HooksInstalled bool     `json:"hooks_installed"`
				Hint           string   `json:"hint,omitempty"`
			}

			r := resp{
				ConfigDir:      configDir,
				SoundPath:      resolved,
				SoundSource:    source,
				SoundFound:     found,
				Disabled:       cfg.Disabled,
				TriggerToken:   app.TriggerToken(),
				AttemptTimeout: cfg.AttemptTimeout.String(),
				Strategies:     strategies,
				HooksInstalled: hooksInstalled,
			}
			if !found {
				r.Hint = "no sound file found; set CHIME_SOUND or place chime.wav in " + configDir
			} else if !hooksInstalled {
				r.Hint = "hooks not installed; run 'chime hook install'"
			}

			return output.PrintSuccess(r)
		},
	}
}
