package assets

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// --- Embeds ---

//go:embed x360ce.ini
var DefaultIni []byte

//go:embed x360ce.gdb
var DefaultGameDb []byte

// --- Helpers ---

// WriteIfMissing writes data to path unless a file already exists there.
// It reports whether the file was created.
func WriteIfMissing(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
