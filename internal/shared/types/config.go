package types

// Config represents the application configuration that can be loaded from a
// TOML, YAML, or JSON file. API keys may also come from the environment
// (see the config adapter); they are never hard-coded in source.
type Config struct {
	BaseDir    string `json:"base_dir" yaml:"base_dir" toml:"base_dir"`
	ReportName string `json:"report_name" yaml:"report_name" toml:"report_name"`

	GoogleAPIKey   string `json:"google_api_key" yaml:"google_api_key" toml:"google_api_key"`
	ComtradeAPIKey string `json:"comtrade_api_key" yaml:"comtrade_api_key" toml:"comtrade_api_key"`
	ExchangeAPIKey string `json:"exchange_api_key" yaml:"exchange_api_key" toml:"exchange_api_key"`

	MaxCalls   int `json:"max_calls" yaml:"max_calls" toml:"max_calls"`
	CooldownMS int `json:"cooldown_ms" yaml:"cooldown_ms" toml:"cooldown_ms"`
}

// PlaceQuery identifies a nearby-search request.
type PlaceQuery struct {
	Keyword      string
	Lat          float64
	Lng          float64
	RadiusMeters int
}

// MarketQuery identifies a marketplace search request.
type MarketQuery struct {
	Keyword  string
	Domain   string // marketplace TLD, e.g. "com", "com.au"
	MaxPages int
}

// TrendQuery identifies a search-interest request.
type TrendQuery struct {
	Keywords  []string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Geo       string // ISO country code, empty for worldwide
}

// TradeQuery identifies a Comtrade tariff-line request.
type TradeQuery struct {
	CmdCode   string   // HS commodity code
	Periods   string   // month range, e.g. "202501-202503"
	Reporters []string // country names; empty means all reporters
	Flow      string   // "X" export, "M" import
}
