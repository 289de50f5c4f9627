// Package cli implements the command-line surface on cobra.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
	"github.com/dysin/market-insights-go/pkg/version"
)

// CLIApp owns the command tree and the long-lived dependencies. The fetch
// adapters are built per run because they need the merged configuration.
type CLIApp struct {
	console    types.ConsoleInterface
	configRepo repository.ConfigRepository
	args       types.CLIArgs
}

func NewCLIApp(console types.ConsoleInterface, configRepo repository.ConfigRepository) *CLIApp {
	return &CLIApp{console: console, configRepo: configRepo}
}

// runContext is everything a subcommand needs after config resolution.
type runContext struct {
	cfg    *types.Config
	args   types.CLIArgs
	ws     paths.Workspace
	budget *budget.CallBudget
}

// resolve loads the config file, lets flags win over it, and prepares the
// workspace.
func (app *CLIApp) resolve() (*runContext, error) {
	cfg, err := app.configRepo.LoadConfig(app.args.ConfigFile)
	if err != nil {
		return nil, err
	}

	args := app.args
	if args.BaseDir == "" {
		args.BaseDir = cfg.BaseDir
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if args.MaxCalls <= 0 {
		args.MaxCalls = cfg.MaxCalls
	}
	if args.CooldownMS <= 0 {
		args.CooldownMS = cfg.CooldownMS
	}

	ws := paths.New(args.BaseDir)
	if err := ws.Ensure(); err != nil {
		return nil, err
	}

	return &runContext{
		cfg:    cfg,
		args:   args,
		ws:     ws,
		budget: budget.New(args.MaxCalls, time.Duration(args.CooldownMS)*time.Millisecond),
	}, nil
}

// BuildRootCommand assembles the full command tree.
func (app *CLIApp) BuildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "market-insights",
		Short:         "Market research toolkit: scraping, trade statistics, trends, and cost analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Name() != "version" {
				printBanner()
				go version.CheckLatest(version.Version)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&app.args.ConfigFile, "config-file", "c", "", "config file (toml, yaml, or json)")
	pf.StringVarP(&app.args.BaseDir, "base-dir", "d", "", "workspace directory for data and reports")
	pf.StringVar(&app.args.ReportName, "report-name", "", "title used on generated reports")
	pf.IntVar(&app.args.MaxCalls, "max-calls", 0, "API call budget for one run")
	pf.IntVar(&app.args.CooldownMS, "cooldown-ms", 0, "pause between API calls in milliseconds")

	root.AddCommand(
		app.placesCommand(),
		app.amazonCommand(),
		app.shopeeCommand(),
		app.alibabaCommand(),
		app.customsCommand(),
		app.trendsCommand(),
		app.ratesCommand(),
		app.costCommand(),
		versionCommand(),
	)
	return root
}

// Execute runs the CLI and reports the outcome on the console.
func (app *CLIApp) Execute() error {
	root := app.BuildRootCommand()
	if err := root.Execute(); err != nil {
		app.console.LogError("%v", err)
		return err
	}
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	}
}
