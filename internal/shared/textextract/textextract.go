// Package textextract pulls structured scraps (emails, prices, ratings)
// out of free-form page text.
package textextract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	ratingRe = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)`)
	priceRe  = regexp.MustCompile(`[0-9]+(?:,[0-9]{3})*(?:\.[0-9]+)?`)
)

// Email returns the first email address found in text, or "" when none is
// present. Obvious image-asset false positives (icon@2x.png style) are
// skipped.
func Email(text string) string {
	for _, m := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") ||
			strings.HasSuffix(lower, ".jpeg") || strings.HasSuffix(lower, ".gif") ||
			strings.HasSuffix(lower, ".webp") || strings.HasSuffix(lower, ".svg") {
			continue
		}
		return m
	}
	return ""
}

// Price parses the first numeric value of a marketplace price string such
// as "$1,299.00" or a range like "US $4.20-5.80" (the low bound wins).
// Commas are treated as thousands separators. The returned bool is false
// when no numeric value is present.
func Price(text string) (float64, bool) {
	m := priceRe.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Number parses an integer that may carry thousands separators or a
// trailing qualifier, e.g. "1,204" or "2.3K sold".
func Number(text string) int {
	text = strings.TrimSpace(text)
	mult := 1.0
	switch {
	case strings.ContainsAny(text, "kK"):
		mult = 1_000
	case strings.ContainsAny(text, "mM"):
		mult = 1_000_000
	}
	v, ok := Price(text)
	if !ok {
		return 0
	}
	return int(v * mult)
}

// Rating parses the leading decimal of a rating blurb such as
// "4.5 out of 5 stars".
func Rating(text string) float64 {
	m := ratingRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
