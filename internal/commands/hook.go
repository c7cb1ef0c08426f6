package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/notify"
	"github.com/dotcommander/chime/internal/sound"
)

// maxHookStdinBytes caps stdin reads. Hook payloads are small JSON objects;
// 1 MB is generous headroom that prevents unbounded allocation.
const maxHookStdinBytes = 1 << 20

// advisoryBlock is the default instruction injected into the model context
// when the submitted prompt carries the trigger suffix. The config.yaml
// advisory key overrides it.
const advisoryBlock = `Ultrathink mode requested.

Use the maximum amount of thinking on this request. Reason from first
principles, weigh at least two approaches before committing to one, and
re-check the final answer against the original request before replying.
Do not shortcut the analysis to save time.`

// NewHookCmd creates the hook parent command.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Hook handlers and installers for Claude Code",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newHookInstallCmd())
	cmd.AddCommand(newHookUninstallCmd())

	// Hook handler subcommands — called by the hook system, not users directly.
	// Hidden from help output to reduce command surface noise.
	for _, sub := range []*cobra.Command{
		newHookPromptCmd(),
		newHookStopCmd(),
		newHookNotificationCmd(),
	} {
		sub.Hidden = true
		cmd.AddCommand(sub)
	}

	return cmd
}

// hookInput is the JSON Claude Code sends on stdin to hooks.
type hookInput struct {
	CWD            string         `json:"cwd"`
	SessionID      string         `json:"session_id"`
	HookEventName  string         `json:"hook_event_name"`
	Prompt         string         `json:"prompt"`
	Message        string         `json:"message"`
	Title          string         `json:"title"`
	TranscriptPath string         `json:"transcript_path"`
	StopHookActive bool           `json:"stop_hook_active"`
	Raw            map[string]any `json:"-"`
}

// hookOutput is the JSON Claude Code expects on stdout from hooks that
// inject context.
type hookOutput struct {
	HookSpecificOutput *hookSpecific `json:"hookSpecificOutput,omitempty"`
}

type hookSpecific struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// readHookInput parses the hook payload. A malformed payload is the one
// fatal path in the whole program: callers report it on the diagnostic
// stream and exit non-zero, with nothing written to stdout.
func readHookInput(r io.Reader) (hookInput, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxHookStdinBytes))
	if err != nil {
		return hookInput{}, fmt.Errorf("read hook stdin: %w", err)
	}

	var input hookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return hookInput{}, fmt.Errorf("parse hook stdin: %w", err)
	}
	// Intentional double-unmarshal: struct tags handle known fields while
	// the Raw map preserves unknown fields for diagnostics/debugging.
	// Hook payloads are <1 KB so the cost is negligible.
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	input.Raw = raw
	return input, nil
}

// hasTriggerSuffix reports whether the prompt, after trimming trailing
// whitespace, ends with the trigger token.
func hasTriggerSuffix(prompt, token string) bool {
	if token == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(prompt, " \t\r\n"), token)
}

// emitHookJSON writes a hookOutput JSON to w.
func emitHookJSON(w io.Writer, eventName, context string) error {
	out := hookOutput{
		HookSpecificOutput: &hookSpecific{
			HookEventName:     eventName,
			AdditionalContext: context,
		},
	}
	return json.NewEncoder(w).Encode(out)
}

// newHookPromptCmd creates the user-prompt-submit hook handler.
func newHookPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "UserPromptSubmit hook — injects the advisory block on the trigger suffix",
		Long: `Reads hook input from stdin (Claude Code provides the prompt). When the
prompt ends with the trigger token (default "-u"), a fixed advisory block
is injected into the model context via additionalContext.

Register via 'chime hook install'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readHookInput(os.Stdin)
			if err != nil {
				// The only fatal path: diagnostic to stderr, non-zero exit,
				// nothing on stdout.
				slog.Error("prompt hook: malformed stdin", "error", err.Error())
				return err
			}

			return runPromptHook(input, app.TriggerToken(), app.AdvisoryText(advisoryBlock), os.Stdout)
		},
	}
}

// runPromptHook injects the advisory when the trigger suffix is present.
// Silence otherwise: Claude Code treats empty stdout as "no extra context".
func runPromptHook(input hookInput, token, advisory string, w io.Writer) error {
	if !hasTriggerSuffix(input.Prompt, token) {
		return nil
	}

	app.DebugLog("prompt hook: advisory injected (session %s)", input.SessionID)
	return emitHookJSON(w, "UserPromptSubmit", advisory)
}

// newHookStopCmd creates the response-completion hook handler.
func newHookStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "stop",
		Short:         "Stop hook — plays the notification sound, best effort",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readHookInput(os.Stdin)
			if err != nil {
				slog.Error("stop hook: malformed stdin", "error", err.Error())
				return err
			}

			// Stop hooks re-fire when a previous stop hook kept the session
			// going; don't chime twice for one response.
			if input.StopHookActive {
				return nil
			}

			playNotificationSound(cmd, input.CWD)
			return nil
		},
	}
}

// playNotificationSound resolves the sound resource and runs the fallback
// chain. Every failure degrades to a no-op: hooks must never block Claude
// Code, so nothing here affects the exit code.
func playNotificationSound(cmd *cobra.Command, cwd string) {
	cfg := app.EffectivePlaybackSettings()
	if cfg.Disabled {
		app.DebugLog("playback disabled")
		return
	}

	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	configDir, _ := app.ConfigDir()

	path, ok := sound.Locate(app.ExplicitSoundPath(), app.ExpandHome(cfg.SoundDir), cwd, configDir)
	if !ok {
		app.DebugLog("no notification sound found")
		return
	}

	player := sound.NewPlayer(slog.Default(), cfg.AttemptTimeout)
	if strategy, played := player.Play(cmd.Context(), path); played {
		app.DebugLog("played %s via %s", path, strategy)
	} else {
		app.DebugLog("playback failed for %s", path)
	}
}

// newHookNotificationCmd creates the Notification hook handler.
func newHookNotificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "notification",
		Short:         "Notification hook — forwards the message to the desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readHookInput(os.Stdin)
			if err != nil {
				slog.Error("notification hook: malformed stdin", "error", err.Error())
				return err
			}

			if app.EffectivePlaybackSettings().Disabled {
				return nil
			}

			title := input.Title
			if title == "" {
				title = "Claude Code"
			}
			message := input.Message
			if message == "" {
				message = "Attention needed"
			}

			// Cosmetic enhancement — failures are logged and discarded.
			if err := notify.Send(title, message); err != nil {
				slog.Warn("desktop notification failed", "error", err.Error())
				app.DebugLog("desktop notification failed: %v", err)
			}
			return nil
		},
	}
}
