package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dysin/market-insights-go/internal/adapter/driven/catalog"
	"github.com/dysin/market-insights-go/internal/adapter/driven/customs"
	"github.com/dysin/market-insights-go/internal/adapter/driven/export"
	"github.com/dysin/market-insights-go/internal/adapter/driven/marketplace"
	"github.com/dysin/market-insights-go/internal/adapter/driven/places"
	"github.com/dysin/market-insights-go/internal/adapter/driven/rates"
	"github.com/dysin/market-insights-go/internal/adapter/driven/store/sqlite"
	"github.com/dysin/market-insights-go/internal/adapter/driven/trends"
	"github.com/dysin/market-insights-go/internal/application/usecase"
	"github.com/dysin/market-insights-go/internal/domain/repository"
)

func (app *CLIApp) placesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Find businesses near a location and enrich them with contact emails",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			repo, err := places.NewPlacesRepository(rc.cfg.GoogleAPIKey, rc.budget, app.console)
			if err != nil {
				return err
			}
			u := usecase.NewPlacesUseCase(repo, export.NewExportRepository(app.console), app.console)
			return u.Run(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVarP(&app.args.Keyword, "keyword", "k", "", "search keyword")
	cmd.Flags().Float64Var(&app.args.Lat, "lat", 0, "latitude of the search center")
	cmd.Flags().Float64Var(&app.args.Lng, "lng", 0, "longitude of the search center")
	cmd.Flags().IntVar(&app.args.RadiusMeters, "radius", 2000, "search radius in meters")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}

func (app *CLIApp) marketplaceCommand(use, short string, build func(rc *runContext) repository.MarketplaceRepository) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			u := usecase.NewMarketplaceUseCase(build(rc), export.NewExportRepository(app.console), app.console)
			return u.Run(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVarP(&app.args.Keyword, "keyword", "k", "", "search keyword")
	cmd.Flags().StringVar(&app.args.Domain, "domain", "", "marketplace storefront TLD")
	cmd.Flags().IntVar(&app.args.MaxPages, "pages", 1, "result pages to fetch")
	cmd.Flags().BoolVar(&app.args.WithImages, "with-images", false, "download product pictures into the workbook")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}

func (app *CLIApp) amazonCommand() *cobra.Command {
	return app.marketplaceCommand("amazon", "Search Amazon listings",
		func(rc *runContext) repository.MarketplaceRepository {
			return marketplace.NewAmazonRepository(rc.budget, app.console)
		})
}

func (app *CLIApp) shopeeCommand() *cobra.Command {
	return app.marketplaceCommand("shopee", "Search Shopee listings",
		func(rc *runContext) repository.MarketplaceRepository {
			return marketplace.NewShopeeRepository(rc.budget, app.console)
		})
}

func (app *CLIApp) alibabaCommand() *cobra.Command {
	return app.marketplaceCommand("alibaba", "Search Alibaba wholesale offers",
		func(rc *runContext) repository.MarketplaceRepository {
			return marketplace.NewAlibabaRepository(rc.budget, app.console)
		})
}

func (app *CLIApp) customsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customs",
		Short: "Fetch and analyze trade statistics",
	}
	cmd.AddCommand(app.customsFetchCommand(), app.customsAnalyzeCommand())
	return cmd
}

func (app *CLIApp) openStore(rc *runContext) (repository.TradeStore, error) {
	return sqlite.Open(filepath.Join(rc.ws.DataDir(), "trade.db"))
}

func (app *CLIApp) customsFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch monthly tariff lines from UN Comtrade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			comtradeRepo, err := customs.NewComtradeRepository(rc.cfg.ComtradeAPIKey, rc.budget, app.console)
			if err != nil {
				return err
			}
			store, err := app.openStore(rc)
			if err != nil {
				return err
			}
			defer store.Close()

			u := usecase.NewCustomsUseCase(comtradeRepo, customs.NewChinaCSVRepository(app.console),
				store, export.NewExportRepository(app.console), app.console)
			return u.Fetch(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVar(&app.args.HSCode, "hs", "", "HS commodity code")
	cmd.Flags().StringVar(&app.args.Periods, "periods", "", "month range, e.g. 202501-202506")
	cmd.Flags().StringSliceVar(&app.args.Reporters, "reporters", nil, "reporter countries (default: all)")
	cmd.Flags().StringVar(&app.args.Flow, "flow", "X", "trade flow: X exports, M imports")
	_ = cmd.MarkFlagRequired("hs")
	_ = cmd.MarkFlagRequired("periods")
	return cmd
}

func (app *CLIApp) customsAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the customs report set: tables, charts, maps, and a PDF summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			store, err := app.openStore(rc)
			if err != nil {
				return err
			}
			defer store.Close()

			// the Comtrade key is only needed for fetches, not analysis
			u := usecase.NewCustomsUseCase(nil, customs.NewChinaCSVRepository(app.console),
				store, export.NewExportRepository(app.console), app.console)
			return u.Analyze(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVarP(&app.args.InputFile, "input", "i", "", "China customs CSV export to analyze (default: stored Comtrade lines)")
	cmd.Flags().StringVar(&app.args.HSCode, "hs", "", "HS code to analyze from the local store")
	cmd.Flags().StringVar(&app.args.LocationMode, "location-mode", "country-name", "map key kind: country-name or iso3")
	return cmd
}

func (app *CLIApp) trendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Fetch search interest over time and by region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			u := usecase.NewTrendsUseCase(trends.NewTrendsRepository(rc.budget, app.console),
				export.NewExportRepository(app.console), app.console)
			return u.Run(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringSliceVarP(&app.args.Keywords, "keywords", "k", nil, "keywords to compare")
	cmd.Flags().StringVar(&app.args.StartDate, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&app.args.EndDate, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().StringVar(&app.args.Geo, "geo", "", "restrict to a country code, empty for worldwide")
	cmd.Flags().BoolVar(&app.args.Regenerate, "regenerate", true, "re-fetch even when a stored snapshot exists")
	_ = cmd.MarkFlagRequired("keywords")
	return cmd
}

func (app *CLIApp) ratesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Refresh the exchange-rate snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			u := usecase.NewRatesUseCase(rates.NewRatesRepository(rc.cfg.ExchangeAPIKey), app.console)
			return u.Run(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVar(&app.args.Currency, "base", "CNY", "base currency to quote against")
	cmd.Flags().StringVar(&app.args.RatesFile, "out", "", "snapshot path (default: <base-dir>/data/rates.csv)")
	return cmd
}

func (app *CLIApp) costCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Price an order book: goods plus shipping in the report currency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.resolve()
			if err != nil {
				return err
			}
			u := usecase.NewCostUseCase(catalog.NewCatalogRepository(),
				rates.NewRatesRepository(rc.cfg.ExchangeAPIKey),
				export.NewExportRepository(app.console), app.console)
			return u.Run(cmd.Context(), rc.args, rc.ws)
		},
	}
	cmd.Flags().StringVar(&app.args.ProductsFile, "products", "", "product catalog CSV")
	cmd.Flags().StringVar(&app.args.LogisticsFile, "logistics", "", "logistics offers CSV")
	cmd.Flags().StringVar(&app.args.OrdersFile, "orders", "", "order lines CSV")
	cmd.Flags().StringVar(&app.args.RatesFile, "rates", "", "rates snapshot CSV (default: fetch live)")
	cmd.Flags().StringVar(&app.args.Currency, "currency", "CNY", "report currency")
	_ = cmd.MarkFlagRequired("products")
	_ = cmd.MarkFlagRequired("logistics")
	_ = cmd.MarkFlagRequired("orders")
	return cmd
}
