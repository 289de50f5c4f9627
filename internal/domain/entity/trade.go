package entity

// TradeRecord is one tariff line: a reporter/partner/period/commodity cell
// with its trade value. Both the UN Comtrade fetcher and the China customs
// loader normalize into this shape, so every aggregation downstream works
// on either provider.
type TradeRecord struct {
	Provider     string  `json:"provider"` // "comtrade" or "china-customs"
	Reporter     string  `json:"reporter"`
	ReporterCode string  `json:"reporter_code,omitempty"`
	Partner      string  `json:"partner"`
	PartnerCode  string  `json:"partner_code,omitempty"`
	Period       int     `json:"period"` // YYYYMM
	CmdCode      string  `json:"cmd_code,omitempty"`
	Product      string  `json:"product"`
	Mode         string  `json:"mode,omitempty"`     // trade mode, China customs only
	Province     string  `json:"province,omitempty"` // registration province, China customs only
	Value        float64 `json:"value"`
	Currency     string  `json:"currency"` // "USD" for Comtrade, "CNY" for China customs
}
