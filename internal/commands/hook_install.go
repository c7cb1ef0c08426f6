package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/output"
)

const chimeCommandFallback = "chime"

//nolint:gochecknoglobals // sync.Once singleton cache for hook definitions; required by the sync.Once pattern
var (
	chimeHooksOnce  sync.Once
	chimeHooksCache map[string]hookEntry
)

type hookHandler struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout"`
}

type hookEntry struct {
	Matcher string        `json:"matcher"`
	Hooks   []hookHandler `json:"hooks"`
}

func claudeSettingsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "settings.json")
}

func projectClaudeSettingsPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".", ".claude", "settings.json")
	}
	return filepath.Join(wd, ".claude", "settings.json")
}

func resolveClaudeSettingsPath(projectScoped bool) string {
	if projectScoped {
		return projectClaudeSettingsPath()
	}
	return claudeSettingsPath()
}

func chimeExecutable() string {
	exe, err := os.Executable()
	if err != nil || strings.TrimSpace(exe) == "" {
		return chimeCommandFallback
	}
	return exe
}

func buildChimeHookCommand(subcommand string) string {
	exe := chimeExecutable()
	if exe == chimeCommandFallback {
		return fmt.Sprintf("chime hook %s", subcommand)
	}
	return fmt.Sprintf("%q hook %s", exe, subcommand)
}

func chimeHooks() map[string]hookEntry {
	chimeHooksOnce.Do(func() {
		chimeHooksCache = buildChimeHooks()
	})
	return chimeHooksCache
}

func buildChimeHooks() map[string]hookEntry {
	return map[string]hookEntry{
		"UserPromptSubmit": {
			Matcher: "",
			Hooks: []hookHandler{{
				Type:    "command",
				Command: buildChimeHookCommand("prompt"),
				Timeout: 2000,
			}},
		},
		"Stop": {
			Matcher: "",
			Hooks: []hookHandler{{
				Type:    "command",
				Command: buildChimeHookCommand("stop"),
				Timeout: 5000,
			}},
		},
		"Notification": {
			Matcher: "",
			Hooks: []hookHandler{{
				Type:    "command",
				Command: buildChimeHookCommand("notification"),
				Timeout: 3000,
			}},
		},
	}
}

func chimeHookEventNames() []string {
	events := make([]string, 0, len(chimeHooks()))
	for name := range chimeHooks() {
		events = append(events, name)
	}
	sort.Strings(events)
	return events
}

func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is home dir or cwd settings.json
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// hasChimeHook checks if a hooks array already contains a chime hook command.
func hasChimeHook(entries []any) bool {
	for _, entry := range entries {
		entryMap, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		hooks, ok := entryMap["hooks"].([]any)
		if !ok {
			continue
		}
		for _, h := range hooks {
			hMap, ok := h.(map[string]any)
			if !ok {
				continue
			}
			cmd, _ := hMap["command"].(string)
			if isChimeHookCommand(cmd) {
				return true
			}
		}
	}
	return false
}

// isChimeHookCommand checks if a command string is a chime hook command.
// The executable token may be a quoted path containing spaces, as produced
// by buildChimeHookCommand.
func isChimeHookCommand(command string) bool {
	exe, rest := splitCommandHead(strings.TrimSpace(command))
	if exe == "" {
		return false
	}
	if filepath.Base(strings.Trim(exe, "\"'")) != "chime" {
		return false
	}

	parts := strings.Fields(rest)
	if len(parts) < 2 || parts[0] != "hook" {
		return false
	}

	switch parts[1] {
	case "prompt", "stop", "notification":
		return true
	default:
		return false
	}
}

// splitCommandHead splits a shell-ish command into its leading executable
// token and the remainder. A head starting with a quote runs to the
// matching close quote; otherwise it runs to the first whitespace.
func splitCommandHead(cmd string) (head, rest string) {
	if cmd == "" {
		return "", ""
	}
	if q := cmd[0]; q == '"' || q == '\'' {
		end := strings.IndexByte(cmd[1:], q)
		if end < 0 {
			return "", ""
		}
		return cmd[:end+2], cmd[end+2:]
	}
	if i := strings.IndexAny(cmd, " \t"); i >= 0 {
		return cmd[:i], cmd[i:]
	}
	return cmd, ""
}

func hookEntryEqual(a, b map[string]any) bool {
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}

type installOutcome int

const (
	hookInstalled installOutcome = iota
	hookUpdated
	hookSkipped
)

// upsertChimeHookEntry replaces any existing chime entry for an event while
// preserving foreign entries untouched.
func upsertChimeHookEntry(existing []any, newEntry map[string]any) ([]any, installOutcome) {
	var kept []any
	hadChime := false
	matchingChime := false

	for _, currentEntry := range existing {
		entryObj, ok := currentEntry.(map[string]any)
		if !ok {
			kept = append(kept, currentEntry)
			continue
		}
		hooks, ok := entryObj["hooks"].([]any)
		if !ok {
			kept = append(kept, currentEntry)
			continue
		}
		isChime := false
		for _, h := range hooks {
			hMap, ok := h.(map[string]any)
			if !ok {
				continue
			}
			cmd, _ := hMap["command"].(string)
			if isChimeHookCommand(cmd) {
				isChime = true
				break
			}
		}
		if isChime {
			hadChime = true
			if hookEntryEqual(entryObj, newEntry) {
				matchingChime = true
			}
			continue
		}
		kept = append(kept, currentEntry)
	}

	kept = append(kept, newEntry)
	entries := kept
	if matchingChime {
		return entries, hookSkipped
	}
	if hadChime {
		return entries, hookUpdated
	}
	return entries, hookInstalled
}

// newHookInstallCmd creates the hook install command.
func newHookInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install chime hooks for Claude Code",
		Long:  "Registers the chime hook handlers in ~/.claude/settings.json (or ./.claude/settings.json with --project).",
		RunE: func(cmd *cobra.Command, args []string) error {
			type result struct {
				Message   string   `json:"message"`
				Path      string   `json:"path"`
				Installed []string `json:"installed"`
				Updated   []string `json:"updated,omitempty"`
				Skipped   []string `json:"skipped"`
			}

			projectScoped, _ := cmd.Flags().GetBool("project")
			path := resolveClaudeSettingsPath(projectScoped)

			settings, err := readSettings(path)
			if err != nil {
				return cmdErr(err)
			}

			hooksObj, _ := settings["hooks"].(map[string]any)
			if hooksObj == nil {
				hooksObj = map[string]any{}
			}

			var installed []string
			var updated []string
			var skipped []string

			for eventName, entry := range chimeHooks() {
				existing, _ := hooksObj[eventName].([]any)

				entryJSON, _ := json.Marshal(entry)
				var entryMap map[string]any
				_ = json.Unmarshal(entryJSON, &entryMap)

				entries, outcome := upsertChimeHookEntry(existing, entryMap)
				hooksObj[eventName] = entries

				switch outcome {
				case hookInstalled:
					installed = append(installed, eventName)
				case hookUpdated:
					updated = append(updated, eventName)
				case hookSkipped:
					skipped = append(skipped, eventName)
				}
			}

			settings["hooks"] = hooksObj
			if err := writeSettings(path, settings); err != nil {
				return cmdErr(err)
			}

			sort.Strings(installed)
			sort.Strings(updated)
			sort.Strings(skipped)

			var parts []string
			if len(installed) > 0 {
				parts = append(parts, fmt.Sprintf("Claude Code hooks installed (%s)", strings.Join(installed, ", ")))
			}
			if len(updated) > 0 {
				parts = append(parts, fmt.Sprintf("Claude Code hooks updated (%s)", strings.Join(updated, ", ")))
			}
			if len(installed) == 0 && len(updated) == 0 {
				parts = append(parts, "Claude Code hooks already installed")
			}

			return output.PrintSuccess(result{
				Message:   strings.Join(parts, "; ") + ". Run 'chime doctor' to verify.",
				Path:      path,
				Installed: installed,
				Updated:   updated,
				Skipped:   skipped,
			})
		},
	}

	cmd.Flags().Bool("project", false, "Install hooks in ./.claude/settings.json")

	return cmd
}

// newHookUninstallCmd creates the hook uninstall command.
func newHookUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove chime hooks for Claude Code",
		Long:  "Removes chime hook entries from ~/.claude/settings.json (or ./.claude/settings.json with --project).",
		RunE: func(cmd *cobra.Command, args []string) error {
			type result struct {
				Path    string   `json:"path"`
				Removed []string `json:"removed"`
			}

			projectScoped, _ := cmd.Flags().GetBool("project")
			path := resolveClaudeSettingsPath(projectScoped)

			settings, err := readSettings(path)
			if err != nil {
				return cmdErr(err)
			}

			hooksObj, _ := settings["hooks"].(map[string]any)
			if hooksObj == nil {
				return output.PrintSuccess(result{Path: path, Removed: []string{}})
			}

			removed := []string{}

			for _, eventName := range chimeHookEventNames() {
				entries, ok := hooksObj[eventName].([]any)
				if !ok {
					continue
				}

				var kept []any
				for _, entry := range entries {
					entryMap, ok := entry.(map[string]any)
					if !ok {
						kept = append(kept, entry)
						continue
					}
					hooks, ok := entryMap["hooks"].([]any)
					if !ok {
						kept = append(kept, entry)
						continue
					}

					isChime := false
					for _, h := range hooks {
						hMap, ok := h.(map[string]any)
						if !ok {
							continue
						}
						cmd, _ := hMap["command"].(string)
						if isChimeHookCommand(cmd) {
							isChime = true
							break
						}
					}

					if !isChime {
						kept = append(kept, entry)
					}
				}

				if len(kept) != len(entries) {
					removed = append(removed, eventName)
				}

				if len(kept) == 0 {
					delete(hooksObj, eventName)
				} else {
					hooksObj[eventName] = kept
				}
			}

			settings["hooks"] = hooksObj
			if err := writeSettings(path, settings); err != nil {
				return cmdErr(err)
			}

			return output.PrintSuccess(result{Path: path, Removed: removed})
		},
	}

	cmd.Flags().Bool("project", false, "Uninstall hooks from ./.claude/settings.json")

	return cmd
}
