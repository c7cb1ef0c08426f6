//go:build !linux && !darwin && !windows

package sound

// playerArgs lists external player commands to try in order on platforms
// without a dedicated list. ffplay is the most likely candidate to exist.
func playerArgs(path string) [][]string {
	return [][]string{
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}
}

func openArgs(path string) []string {
	return []string{"xdg-open", path}
}
