package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesTree(t *testing.T) {
	base := t.TempDir()
	w := New(filepath.Join(base, "proj"))

	require.NoError(t, w.Ensure())

	for _, dir := range []string{w.DataDir(), w.ReportsDir(), w.ChartsDir(), w.MapsDir(), w.ImagesDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestTimestampedFormat(t *testing.T) {
	name := Timestamped("partners_by_value", "csv")
	assert.Regexp(t, regexp.MustCompile(`^partners_by_value_\d{8}_\d{6}\.csv$`), name)
}

func TestEmptyBaseDefaultsToCwd(t *testing.T) {
	w := New("")
	assert.Equal(t, filepath.Join(".", "data"), w.DataDir())
}
