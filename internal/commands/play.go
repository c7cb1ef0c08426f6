package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
	"github.com/dotcommander/chime/internal/sound"
)

// NewPlayCmd creates the manual playback command. It runs the same
// fallback chain as the stop hook and reports which mechanism won, which
// makes it the quickest way to verify a host's audio setup.
func NewPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [path]",
		Short: "Play the notification sound through the fallback chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type resp struct {
				Path     string `json:"path,omitempty"`
				Played   bool   `json:"played"`
				Strategy string `json:"strategy,omitempty"`
				Reason   string `json:"reason,omitempty"`
			}

			cfg := app.EffectivePlaybackSettings()
			if cfg.Disabled {
				return output.PrintSuccess(resp{Played: false, Reason: "playback disabled (CHIME_DISABLED or config)"})
			}

			var path string
			if len(args) == 1 {
				path = app.ExpandHome(args[0])
				if _, err := os.Stat(path); err != nil {
					return cmdErr(fmt.Errorf("sound file: %w", err))
				}
			} else {
				cwd, _ := os.Getwd()
				configDir, _ := app.ConfigDir()
				resolved, ok := sound.Locate(app.ExplicitSoundPath(), app.ExpandHome(cfg.SoundDir), cwd, configDir)
				if !ok {
					return output.PrintSuccess(resp{Played: false, Reason: "no sound file found; set CHIME_SOUND or drop a chime.wav next to your project"})
				}
				path = resolved
			}

			player := sound.NewPlayer(slog.Default(), cfg.AttemptTimeout)
			strategy, played := player.Play(cmd.Context(), path)
			if !played {
				return output.PrintSuccess(resp{Path: path, Played: false, Reason: "all playback strategies failed"})
			}
			return output.PrintSuccess(resp{Path: path, Played: true, Strategy: strategy})
		},
	}
}
