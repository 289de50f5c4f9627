// Package m49 maps between country names, UNSD M49 numeric codes, and
// ISO3 alpha codes. The embedded table covers the countries that show up
// in customs statistics; unknown names simply miss, callers decide whether
// that is fatal.
package m49

import (
	_ "embed"
	"encoding/csv"
	"strings"
	"sync"
)

//go:embed m49.csv
var raw string

// Country is one row of the M49 table.
type Country struct {
	Name string
	M49  string
	ISO3 string
}

var (
	once   sync.Once
	byName map[string]Country
	byM49  map[string]Country
	byISO3 map[string]Country
	all    []Country
)

// aliases maps the names customs providers actually emit onto the
// canonical M49 names.
var aliases = map[string]string{
	"usa":                  "United States of America",
	"united states":        "United States of America",
	"rep. of korea":        "Republic of Korea",
	"south korea":          "Republic of Korea",
	"korea":                "Republic of Korea",
	"russia":               "Russian Federation",
	"vietnam":              "Viet Nam",
	"china, hong kong sar": "China, Hong Kong SAR",
	"hong kong":            "China, Hong Kong SAR",
	"taiwan":               "Other Asia, nes",
	"uk":                   "United Kingdom",
	"great britain":        "United Kingdom",
	"uae":                  "United Arab Emirates",
	"turkey":               "Türkiye",
	"czech republic":       "Czechia",
	"netherlands (kingdom of the)": "Netherlands",
	"bolivia":              "Bolivia (Plurinational State of)",
	"iran":                 "Iran (Islamic Republic of)",
	"tanzania":             "United Rep. of Tanzania",
	"venezuela":            "Venezuela (Bolivarian Republic of)",
	"laos":                 "Lao People's Dem. Rep.",
	"syria":                "Syrian Arab Republic",
	"north korea":          "Dem. People's Rep. of Korea",
	"moldova":              "Republic of Moldova",
	"brunei":               "Brunei Darussalam",
	"ivory coast":          "Côte d'Ivoire",
	"cote d'ivoire":        "Côte d'Ivoire",
	"myanmar (burma)":      "Myanmar",
	"macau":                "China, Macao SAR",
}

func load() {
	byName = make(map[string]Country)
	byM49 = make(map[string]Country)
	byISO3 = make(map[string]Country)

	r := csv.NewReader(strings.NewReader(raw))
	rows, err := r.ReadAll()
	if err != nil {
		panic("m49: embedded table is malformed: " + err.Error())
	}
	for _, row := range rows[1:] { // skip header
		c := Country{Name: row[0], M49: row[1], ISO3: row[2]}
		all = append(all, c)
		byName[strings.ToLower(c.Name)] = c
		byM49[c.M49] = c
		byISO3[c.ISO3] = c
	}
	for alias, canonical := range aliases {
		if c, ok := byName[strings.ToLower(canonical)]; ok {
			byName[alias] = c
		}
	}
}

// ByName resolves a country name, accepting common shorthand like "USA".
func ByName(name string) (Country, bool) {
	once.Do(load)
	c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ByM49 resolves a numeric M49 code given as a string without leading zeros.
func ByM49(code string) (Country, bool) {
	once.Do(load)
	c, ok := byM49[strings.TrimSpace(code)]
	return c, ok
}

// ByISO3 resolves an ISO3 alpha code such as "DEU".
func ByISO3(code string) (Country, bool) {
	once.Do(load)
	c, ok := byISO3[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// All returns every country in the table.
func All() []Country {
	once.Do(load)
	return all
}
