package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// RatesUseCase refreshes the local CNY rate snapshot.
type RatesUseCase struct {
	rates   repository.RatesRepository
	console types.ConsoleInterface
}

func NewRatesUseCase(rates repository.RatesRepository, console types.ConsoleInterface) *RatesUseCase {
	return &RatesUseCase{rates: rates, console: console}
}

// headline currencies shown in the terminal after a refresh.
var headlineCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "SGD", "BRL"}

func (u *RatesUseCase) Run(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	base := args.Currency
	if base == "" {
		base = "CNY"
	}

	status := u.console.Status(fmt.Sprintf("Fetching %s exchange rates...", base))
	table, err := u.rates.FetchLatest(ctx, base)
	status.Stop()
	if err != nil {
		return fmt.Errorf("rates fetch failed: %w", err)
	}

	path := args.RatesFile
	if path == "" {
		var perr error
		if path, perr = ratesSnapshotPath(ws); perr != nil {
			return perr
		}
	}
	if err := u.rates.SaveCSV(table, path); err != nil {
		return err
	}

	out := u.console.CreateTable()
	out.AddColumn("Currency")
	out.AddColumn(fmt.Sprintf("1 %s buys", base))
	codes := make([]string, 0, len(headlineCurrencies))
	for _, code := range headlineCurrencies {
		if _, ok := table.Rates[code]; ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		out.AddRow(code, fmt.Sprintf("%.4f", table.Rates[code]))
	}
	u.console.Println(out.Render())

	u.console.LogSuccess("saved %d rates to %s", len(table.Rates), path)
	return nil
}

func ratesSnapshotPath(ws paths.Workspace) (string, error) {
	if err := ws.Ensure(); err != nil {
		return "", err
	}
	return filepath.Join(ws.DataDir(), "rates.csv"), nil
}
