package types

// CLIArgs represents the command-line arguments shared across subcommands.
type CLIArgs struct {
	ConfigFile string
	BaseDir    string
	ReportName string

	// Fetch pacing
	MaxCalls   int
	CooldownMS int

	// places
	Keyword      string
	Lat          float64
	Lng          float64
	RadiusMeters int

	// marketplace
	Domain     string
	MaxPages   int
	WithImages bool

	// customs
	InputFile string
	HSCode    string
	Periods   string
	Reporters []string
	Flow      string

	// trends
	Keywords   []string
	StartDate  string
	EndDate    string
	Geo        string
	Regenerate bool

	// cost
	ProductsFile  string
	LogisticsFile string
	OrdersFile    string
	RatesFile     string
	Currency      string

	// choropleth
	LocationMode string // "country-name" or "iso3"
}
