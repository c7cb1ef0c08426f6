package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsChimeHookCommand(t *testing.T) {
	require.True(t, isChimeHookCommand("chime hook prompt"))
	require.True(t, isChimeHookCommand("chime hook stop"))
	require.True(t, isChimeHookCommand("chime hook notification"))
	require.True(t, isChimeHookCommand(`"/usr/local/bin/chime" hook stop`))
	require.True(t, isChimeHookCommand("  chime hook prompt  "))

	// Quoted executable paths containing spaces must still be recognized,
	// or reinstalls duplicate the entry and uninstalls leave it behind.
	require.True(t, isChimeHookCommand(`"/home/my user/bin/chime" hook stop`))
	require.True(t, isChimeHookCommand(`'/home/my user/bin/chime' hook prompt`))

	require.False(t, isChimeHookCommand(""))
	require.False(t, isChimeHookCommand("chime hook"))
	require.False(t, isChimeHookCommand("chime hook unknown"))
	require.False(t, isChimeHookCommand("other hook prompt"))
	require.False(t, isChimeHookCommand("otherbin hook prompt"))
	require.False(t, isChimeHookCommand(`"/home/my user/bin/other" hook stop`))
	require.False(t, isChimeHookCommand(`"/unterminated/chime hook stop`))
}

func TestBuildChimeHooks_CoversExpectedEvents(t *testing.T) {
	hooks := buildChimeHooks()
	require.Len(t, hooks, 3)

	for _, event := range []string{"UserPromptSubmit", "Stop", "Notification"} {
		entry, ok := hooks[event]
		require.True(t, ok, "missing event %s", event)
		require.Len(t, entry.Hooks, 1)
		require.Equal(t, "command", entry.Hooks[0].Type)
		require.True(t, isChimeHookCommand(entry.Hooks[0].Command), "command %q", entry.Hooks[0].Command)
		require.Positive(t, entry.Hooks[0].Timeout)
	}
}

func entryMapForTest(t *testing.T, sub string) map[string]any {
	t.Helper()
	entry := hookEntry{
		Hooks: []hookHandler{{Type: "command", Command: "chime hook " + sub, Timeout: 5000}},
	}
	b, err := json.Marshal(entry)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestUpsertChimeHookEntry_Installed(t *testing.T) {
	newEntry := entryMapForTest(t, "stop")

	entries, outcome := upsertChimeHookEntry(nil, newEntry)
	require.Equal(t, hookInstalled, outcome)
	require.Len(t, entries, 1)
}

func TestUpsertChimeHookEntry_SkippedWhenIdentical(t *testing.T) {
	newEntry := entryMapForTest(t, "stop")
	existing := []any{entryMapForTest(t, "stop")}

	entries, outcome := upsertChimeHookEntry(existing, newEntry)
	require.Equal(t, hookSkipped, outcome)
	require.Len(t, entries, 1)
}

func TestUpsertChimeHookEntry_UpdatedWhenDifferent(t *testing.T) {
	old := entryMapForTest(t, "stop")
	old["matcher"] = "legacy"
	newEntry := entryMapForTest(t, "stop")

	entries, outcome := upsertChimeHookEntry([]any{old}, newEntry)
	require.Equal(t, hookUpdated, outcome)
	require.Len(t, entries, 1)
	require.True(t, hookEntryEqual(entries[0].(map[string]any), newEntry))
}

func TestUpsertChimeHookEntry_PreservesForeignEntries(t *testing.T) {
	foreign := map[string]any{
		"matcher": "",
		"hooks": []any{
			map[string]any{"type": "command", "command": "other-tool hook stop"},
		},
	}
	newEntry := entryMapForTest(t, "stop")

	entries, outcome := upsertChimeHookEntry([]any{foreign}, newEntry)
	require.Equal(t, hookInstalled, outcome)
	require.Len(t, entries, 2)
	require.Equal(t, foreign, entries[0])
}

func TestHasChimeHook(t *testing.T) {
	require.False(t, hasChimeHook(nil))
	require.False(t, hasChimeHook([]any{"garbage"}))

	entries := []any{entryMapForTest(t, "prompt")}
	require.True(t, hasChimeHook(entries))
}

func TestReadWriteSettings_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "settings.json")

	// Missing file reads as an empty settings object.
	settings, err := readSettings(path)
	require.NoError(t, err)
	require.Empty(t, settings)

	settings["hooks"] = map[string]any{
		"Stop": []any{entryMapForTest(t, "stop")},
	}
	settings["model"] = "keep-me"

	require.NoError(t, writeSettings(path, settings))

	got, err := readSettings(path)
	require.NoError(t, err)
	require.Equal(t, "keep-me", got["model"])
	hooksObj, ok := got["hooks"].(map[string]any)
	require.True(t, ok)
	entries, ok := hooksObj["Stop"].([]any)
	require.True(t, ok)
	require.True(t, hasChimeHook(entries))
}

func TestReadSettings_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := readSettings(path)
	require.Error(t, err)
}

func TestChimeHookEventNames_Sorted(t *testing.T) {
	names := chimeHookEventNames()
	require.Equal(t, []string{"Notification", "Stop", "UserPromptSubmit"}, names)
}
