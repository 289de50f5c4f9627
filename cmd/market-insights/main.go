package main

import (
	"os"

	"github.com/dysin/market-insights-go/internal/adapter/driven/config"
	"github.com/dysin/market-insights-go/internal/adapter/driving/cli"
	"github.com/dysin/market-insights-go/pkg/console"
)

func main() {
	app := cli.NewCLIApp(console.NewConsole(), config.NewConfigRepository())
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
