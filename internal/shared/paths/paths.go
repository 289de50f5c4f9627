// Package paths centralizes the on-disk layout of a research workspace.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Workspace lays out the output directories for one research project under a
// base directory. All emitters write inside it.
type Workspace struct {
	Base string
}

func New(base string) Workspace {
	if base == "" {
		base = "."
	}
	return Workspace{Base: base}
}

func (w Workspace) DataDir() string    { return filepath.Join(w.Base, "data") }
func (w Workspace) ReportsDir() string { return filepath.Join(w.Base, "reports") }
func (w Workspace) ChartsDir() string  { return filepath.Join(w.Base, "reports", "charts") }
func (w Workspace) MapsDir() string    { return filepath.Join(w.Base, "reports", "maps") }
func (w Workspace) ImagesDir() string  { return filepath.Join(w.Base, "data", "images") }

// Ensure creates the whole directory tree.
func (w Workspace) Ensure() error {
	for _, dir := range []string{w.DataDir(), w.ReportsDir(), w.ChartsDir(), w.MapsDir(), w.ImagesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// Timestamped returns base_YYYYMMDD_HHMMSS.ext so repeated runs never
// overwrite earlier output.
func Timestamped(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format("20060102_150405"), ext)
}
