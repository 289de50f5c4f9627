package entity

import "time"

// TrendPoint is one date's search interest (0-100) for a keyword.
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Keyword string    `json:"keyword"`
	Score   int       `json:"score"`
}

// RegionInterest is one country's relative search interest for a keyword.
type RegionInterest struct {
	Country string `json:"country"` // ISO3 where resolvable, otherwise the API name
	Keyword string `json:"keyword"`
	Score   int    `json:"score"`
}
