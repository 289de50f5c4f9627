// Package usecase wires the fetch adapters to the report emitters, one
// use case per subcommand.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// PlacesUseCase runs a nearby-business search and exports the results.
type PlacesUseCase struct {
	places  repository.PlacesRepository
	export  repository.ExportRepository
	console types.ConsoleInterface
}

func NewPlacesUseCase(places repository.PlacesRepository, export repository.ExportRepository, console types.ConsoleInterface) *PlacesUseCase {
	return &PlacesUseCase{places: places, export: export, console: console}
}

func (u *PlacesUseCase) Run(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	status := u.console.Status(fmt.Sprintf("Searching for %q near %.4f,%.4f...", args.Keyword, args.Lat, args.Lng))

	records, err := u.places.Search(ctx, types.PlaceQuery{
		Keyword:      args.Keyword,
		Lat:          args.Lat,
		Lng:          args.Lng,
		RadiusMeters: args.RadiusMeters,
	})
	status.Stop()

	switch {
	case errors.Is(err, types.ErrBudgetExhausted):
		u.console.LogWarning("call budget exhausted after %d places; exporting partial results", len(records))
	case err != nil:
		return fmt.Errorf("places search failed: %w", err)
	}

	if len(records) == 0 {
		u.console.LogWarning("no places found for %q", args.Keyword)
		return nil
	}

	path, err := u.export.ExportPlacesToCSV(records, "places_"+sanitize(args.Keyword), ws.DataDir())
	if err != nil {
		return err
	}

	table := u.console.CreateTable()
	table.AddColumn("Name")
	table.AddColumn("Rating")
	table.AddColumn("Phone")
	table.AddColumn("Email")
	for i, p := range records {
		if i == 10 {
			break
		}
		table.AddRow(p.Name, fmt.Sprintf("%.1f (%d)", p.Rating, p.RatingsTotal), p.Phone, p.Email)
	}
	u.console.Println(table.Render())

	u.console.LogSuccess("exported %d places to %s", len(records), path)
	return nil
}
