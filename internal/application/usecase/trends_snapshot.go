package usecase

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
)

// latestSnapshot finds the newest timestamped CSV for a base name. The
// timestamp suffix sorts lexicographically, so the last match wins.
func latestSnapshot(dir, base string) string {
	matches, err := filepath.Glob(filepath.Join(dir, base+"_*.csv"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}

func readSnapshot(path string) ([][]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) < 2 {
		return nil, false
	}
	return rows[1:], true
}

// storedPoints loads the newest persisted interest series, or nil when
// there is none to reuse.
func storedPoints(dir, base string) []entity.TrendPoint {
	path := latestSnapshot(dir, base)
	if path == "" {
		return nil
	}
	rows, ok := readSnapshot(path)
	if !ok {
		return nil
	}

	points := make([]entity.TrendPoint, 0, len(rows))
	for _, row := range rows {
		if len(row) != 3 {
			return nil
		}
		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return nil
		}
		points = append(points, entity.TrendPoint{Date: date, Keyword: row[1], Score: score})
	}
	return points
}

// storedRegions loads the newest persisted region interest table, or nil
// when there is none to reuse.
func storedRegions(dir, base string) []entity.RegionInterest {
	path := latestSnapshot(dir, base)
	if path == "" {
		return nil
	}
	rows, ok := readSnapshot(path)
	if !ok {
		return nil
	}

	regions := make([]entity.RegionInterest, 0, len(rows))
	for _, row := range rows {
		if len(row) != 3 {
			return nil
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return nil
		}
		regions = append(regions, entity.RegionInterest{Country: row[0], Keyword: row[1], Score: score})
	}
	return regions
}
