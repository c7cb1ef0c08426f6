package sound

import (
	"os"
	"path/filepath"
)

// soundFileNames are the bundled resource names looked for in each
// candidate directory, in preference order.
var soundFileNames = []string{"chime.wav", "chime.mp3", "chime.ogg"}

// maxAncestorDepth bounds the walk up from the working directory.
const maxAncestorDepth = 3

// Candidates returns the ordered list of paths checked for the
// notification sound: the explicitly configured path first, then the
// configured base directory, then the working directory and a few of its
// ancestors, then the user config directory. No absolute location is
// baked in; callers supply every root.
func Candidates(explicit, baseDir, cwd, configDir string) []string {
	var out []string
	if explicit != "" {
		out = append(out, explicit)
	}
	if baseDir != "" {
		out = append(out, dirCandidates(baseDir)...)
	}

	dir := cwd
	for depth := 0; depth <= maxAncestorDepth && dir != ""; depth++ {
		out = append(out, dirCandidates(dir)...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if configDir != "" {
		out = append(out, dirCandidates(configDir)...)
	}
	return out
}

func dirCandidates(dir string) []string {
	out := make([]string, 0, len(soundFileNames)*2)
	for _, name := range soundFileNames {
		out = append(out, filepath.Join(dir, name))
	}
	for _, name := range soundFileNames {
		out = append(out, filepath.Join(dir, "sounds", name))
	}
	return out
}

// Locate returns the first candidate that exists as a regular file.
// When none exists the caller is expected to silently do nothing.
func Locate(explicit, baseDir, cwd, configDir string) (string, bool) {
	for _, c := range Candidates(explicit, baseDir, cwd, configDir) {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}
