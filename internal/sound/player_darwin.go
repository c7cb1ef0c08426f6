//go:build darwin

package sound

// playerArgs lists external player commands to try in order on macOS.
func playerArgs(path string) [][]string {
	return [][]string{
		{"afplay", path},
	}
}

func openArgs(path string) []string {
	return []string{"open", path}
}
