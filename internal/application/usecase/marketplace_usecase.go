package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// MarketplaceUseCase searches one marketplace and exports the listings as
// CSV, JSON, and an XLSX workbook (with product pictures when requested).
type MarketplaceUseCase struct {
	market  repository.MarketplaceRepository
	export  repository.ExportRepository
	console types.ConsoleInterface
}

func NewMarketplaceUseCase(market repository.MarketplaceRepository, export repository.ExportRepository, console types.ConsoleInterface) *MarketplaceUseCase {
	return &MarketplaceUseCase{market: market, export: export, console: console}
}

func (u *MarketplaceUseCase) Run(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	source := string(u.market.Source())
	status := u.console.Status(fmt.Sprintf("Searching %s for %q...", source, args.Keyword))

	records, err := u.market.Search(ctx, types.MarketQuery{
		Keyword:  args.Keyword,
		Domain:   args.Domain,
		MaxPages: args.MaxPages,
	})
	status.Stop()

	switch {
	case errors.Is(err, types.ErrBudgetExhausted):
		u.console.LogWarning("call budget exhausted after %d listings; exporting partial results", len(records))
	case err != nil:
		return fmt.Errorf("%s search failed: %w", source, err)
	}

	if len(records) == 0 {
		u.console.LogWarning("no %s listings found for %q", source, args.Keyword)
		return nil
	}

	base := source + "_" + sanitize(args.Keyword)
	csvPath, err := u.export.ExportProductsToCSV(records, base, ws.DataDir())
	if err != nil {
		return err
	}
	if _, err := u.export.ExportProductsToJSON(records, base, ws.DataDir()); err != nil {
		return err
	}

	imagesDir := ""
	if args.WithImages {
		imagesDir = ws.ImagesDir()
		imgStatus := u.console.Status("Downloading product images...")
		err := u.export.DownloadProductImages(ctx, records, imagesDir)
		imgStatus.Stop()
		if err != nil {
			return err
		}
	}
	xlsxPath, err := u.export.ExportProductsToXLSX(records, imagesDir, base, ws.ReportsDir())
	if err != nil {
		return err
	}

	u.console.LogSuccess("exported %d %s listings to %s and %s", len(records), source, csvPath, xlsxPath)
	return nil
}
