package entity

import "time"

// NamedValue is one labelled number in a report section.
type NamedValue struct {
	Name  string
	Value float64
}

// ProductBreakdown summarizes one commodity inside an analysis report.
type ProductBreakdown struct {
	Product     string
	TotalValue  float64
	Share       float64 // fraction of the report total, 0..1
	TopPartners []NamedValue
	TopModes    []NamedValue
}

// AnalysisReport is the printable summary of one customs analysis run.
type AnalysisReport struct {
	Title       string
	GeneratedAt time.Time
	Provider    string
	Currency    string
	PeriodFrom  int // YYYYMM
	PeriodTo    int
	RecordCount int
	TotalValue  float64
	Products    []ProductBreakdown
	ChartPaths  []string
}
