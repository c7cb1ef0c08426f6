package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	root := &cobra.Command{
		Use:           "chime",
		Short:         "Notification sounds and prompt advisories for Claude Code hooks",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.LoadDotenv()

			if err := app.EnsureConfigDir(); err != nil {
				return err
			}

			// Wire --sound into the app-level resolver.
			if soundPath, err := cmd.Flags().GetString("sound"); err == nil && soundPath != "" {
				app.SetSoundPathOverride(soundPath)
			}

			return nil
		},
	}

	root.PersistentFlags().String("sound", "", "Override notification sound file")
	root.Flags().BoolP("version", "v", false, "version for chime")

	root.AddCommand(NewHookCmd())
	root.AddCommand(NewAnnotateCmd())
	root.AddCommand(NewPlayCmd())
	root.AddCommand(NewDoctorCmd())

	err := root.Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}
