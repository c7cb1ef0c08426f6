//go:build windows

package sound

import "strings"

// playerArgs lists external player commands to try in order on Windows.
// Media.SoundPlayer only handles WAV; single quotes in the path are doubled
// for the PowerShell string literal.
func playerArgs(path string) [][]string {
	quoted := strings.ReplaceAll(path, "'", "''")
	return [][]string{
		{"powershell", "-NoProfile", "-Command",
			"(New-Object Media.SoundPlayer '" + quoted + "').PlaySync()"},
	}
}

func openArgs(path string) []string {
	// `start ""` detaches with an empty window title so the path is not
	// mistaken for one.
	return []string{"cmd", "/c", "start", "", path}
}
