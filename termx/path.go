package termx

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns path in NFC form.
// HFS+ and APFS report file names decomposed, so two visually identical paths can compare unequal without this.
func Normalize(path string) string {
	return norm.NFC.String(path)
}

// NormalizePath returns path NFC-normalized on darwin, and unchanged on every other platform.
func NormalizePath(path string) string {
	if runtime.GOOS != "darwin" {
		return path
	}
	return Normalize(path)
}

// ConfigDir computes the conventional per-user configuration directory for scripts built on this module.
// The directory is only computed here, never created or written to.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Scriptx"), nil
	}
	return filepath.Join(home, ".config", "scriptx"), nil
}
