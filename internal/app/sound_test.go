package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExplicitSoundPath_Precedence(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	userConfigPath := filepath.Join(home, ".config", "chime", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfigPath), 0o755))
	require.NoError(t, os.WriteFile(userConfigPath, []byte("sound_path: /tmp/from-config.wav\n"), 0o600))

	t.Setenv("CHIME_SOUND", "")
	require.Equal(t, "/tmp/from-config.wav", ExplicitSoundPath())

	t.Setenv("CHIME_SOUND", "/tmp/from-env.wav")
	require.Equal(t, "/tmp/from-env.wav", ExplicitSoundPath())

	SetSoundPathOverride("/tmp/from-flag.wav")
	require.Equal(t, "/tmp/from-flag.wav", ExplicitSoundPath())
}

func TestResolveSoundPathDetailed_Sources(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CHIME_SOUND", "")

	workdir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	path, source := ResolveSoundPathDetailed()
	require.Empty(t, path)
	require.Equal(t, "discovery", source)

	t.Setenv("CHIME_SOUND", "/tmp/env.wav")
	path, source = ResolveSoundPathDetailed()
	require.Equal(t, "/tmp/env.wav", path)
	require.Equal(t, "env(CHIME_SOUND)", source)

	SetSoundPathOverride("/tmp/flag.wav")
	path, source = ResolveSoundPathDetailed()
	require.Equal(t, "/tmp/flag.wav", path)
	require.Equal(t, "cli(--sound)", source)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, "x.wav"), ExpandHome("~/x.wav"))
	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, "/abs/x.wav", ExpandHome("/abs/x.wav"))
	require.Equal(t, "rel/x.wav", ExpandHome("rel/x.wav"))
}

func TestDebugLog_AppendsAndIgnoresFailures(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	logPath := filepath.Join(home, "chime-test.log")
	t.Setenv("CHIME_DEBUG_LOG", logPath)

	DebugLog("played %s via %s", "chime.wav", "decode")
	DebugLog("no sound file found")

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, "played chime.wav via decode\nno sound file found\n", string(b))

	// Unwritable path — must not panic or error.
	t.Setenv("CHIME_DEBUG_LOG", filepath.Join(home, "missing-dir", "nested", "chime.log"))
	DebugLog("dropped")
}
