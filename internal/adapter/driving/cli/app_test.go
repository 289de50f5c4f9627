package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/shared/types"
	"github.com/dysin/market-insights-go/pkg/console"
)

type fixedConfig struct {
	cfg types.Config
}

func (f *fixedConfig) LoadConfig(string) (*types.Config, error) {
	cfg := f.cfg
	return &cfg, nil
}

func testApp(t *testing.T, cfg types.Config) *CLIApp {
	t.Helper()
	if cfg.BaseDir == "" {
		cfg.BaseDir = t.TempDir()
	}
	return NewCLIApp(console.NewQuietConsole(io.Discard), &fixedConfig{cfg: cfg})
}

func TestResolveFlagsWinOverConfig(t *testing.T) {
	app := testApp(t, types.Config{ReportName: "from config", MaxCalls: 60, CooldownMS: 1000})
	app.args.ReportName = "from flag"
	app.args.MaxCalls = 5

	rc, err := app.resolve()
	require.NoError(t, err)

	assert.Equal(t, "from flag", rc.args.ReportName)
	assert.Equal(t, 5, rc.args.MaxCalls)
	// unset flags fall back to the config file
	assert.Equal(t, 1000, rc.args.CooldownMS)
	assert.Equal(t, 5, rc.budget.Remaining())
}

func TestResolveEnsuresWorkspace(t *testing.T) {
	base := t.TempDir()
	app := testApp(t, types.Config{BaseDir: base, MaxCalls: 10})

	rc, err := app.resolve()
	require.NoError(t, err)
	assert.DirExists(t, rc.ws.DataDir())
	assert.DirExists(t, rc.ws.ReportsDir())
}

func TestRootCommandTree(t *testing.T) {
	app := testApp(t, types.Config{MaxCalls: 10})
	root := app.BuildRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"places", "amazon", "shopee", "alibaba", "customs", "trends", "rates", "cost", "version"} {
		assert.Contains(t, names, want)
	}

	customs, _, err := root.Find([]string{"customs", "analyze"})
	require.NoError(t, err)
	assert.Equal(t, "analyze", customs.Name())
}
