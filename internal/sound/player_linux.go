//go:build linux

package sound

// playerArgs lists external player commands to try in order on Linux.
func playerArgs(path string) [][]string {
	return [][]string{
		{"paplay", path},
		{"aplay", "-q", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}
}

func openArgs(path string) []string {
	return []string{"xdg-open", path}
}
