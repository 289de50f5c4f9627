// Package marketplace implements product search against Amazon, Shopee,
// and Alibaba, each normalized into entity.ProductRecord.
package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/textextract"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// userAgent is sent on scraping requests; marketplaces refuse the Go
// default agent outright.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// currencySymbols is checked in order; multi-rune symbols come first so
// "R$" never matches as "$".
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"R$", "BRL"}, {"A$", "AUD"}, {"€", "EUR"}, {"£", "GBP"}, {"¥", "JPY"}, {"$", "USD"},
}

// AmazonRepositoryImpl scrapes Amazon search result pages.
type AmazonRepositoryImpl struct {
	// BaseURL overrides the marketplace host in tests. When empty the
	// host is built from the query domain.
	BaseURL string

	client  *http.Client
	budget  *budget.CallBudget
	console types.ConsoleInterface
}

var _ repository.MarketplaceRepository = (*AmazonRepositoryImpl)(nil)

func NewAmazonRepository(b *budget.CallBudget, console types.ConsoleInterface) *AmazonRepositoryImpl {
	return &AmazonRepositoryImpl{
		client:  &http.Client{Timeout: 20 * time.Second},
		budget:  b,
		console: console,
	}
}

func (r *AmazonRepositoryImpl) Source() entity.ProductSource { return entity.SourceAmazon }

// Search fetches up to q.MaxPages result pages, one budget call each. A
// page that fails transiently is logged and counted as empty.
func (r *AmazonRepositoryImpl) Search(ctx context.Context, q types.MarketQuery) ([]entity.ProductRecord, error) {
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var records []entity.ProductRecord
	for page := 1; page <= maxPages; page++ {
		if err := r.budget.Spend(); err != nil {
			return records, err
		}

		doc, err := r.fetchPage(ctx, q, page)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			r.console.LogWarning("amazon page %d failed, treating as empty: %v", page, err)
			r.budget.Cooldown()
			continue
		}

		found := 0
		doc.Find(`div[data-component-type="s-search-result"]`).Each(func(_ int, s *goquery.Selection) {
			rec, ok := r.normalize(s, q.Domain)
			if !ok {
				return
			}
			records = append(records, rec)
			found++
		})
		if found == 0 {
			break
		}
		r.budget.Cooldown()
	}
	return records, nil
}

func (r *AmazonRepositoryImpl) fetchPage(ctx context.Context, q types.MarketQuery, page int) (*goquery.Document, error) {
	base := r.BaseURL
	if base == "" {
		domain := q.Domain
		if domain == "" {
			domain = "com"
		}
		base = "https://www.amazon." + domain
	}

	params := url.Values{}
	params.Set("k", q.Keyword)
	params.Set("page", fmt.Sprint(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/s?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amazon returned HTTP %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// normalize maps one search-result card onto a ProductRecord. Cards
// without an ASIN are dropped; everything else is best effort.
func (r *AmazonRepositoryImpl) normalize(s *goquery.Selection, domain string) (entity.ProductRecord, bool) {
	asin, _ := s.Attr("data-asin")
	if strings.TrimSpace(asin) == "" {
		return entity.ProductRecord{}, false
	}

	title := strings.TrimSpace(s.Find("h2 span").First().Text())
	priceText := s.Find(".a-price .a-offscreen").First().Text()
	price, _ := textextract.Price(priceText)
	rating := textextract.Rating(s.Find(".a-icon-alt").First().Text())
	reviews := textextract.Number(s.Find(".s-link-style .s-underline-text").First().Text())
	image, _ := s.Find("img.s-image").First().Attr("src")

	if domain == "" {
		domain = "com"
	}
	currency := "USD"
	for _, cs := range currencySymbols {
		if strings.Contains(priceText, cs.symbol) {
			currency = cs.code
			break
		}
	}

	return entity.ProductRecord{
		Source:   entity.SourceAmazon,
		ID:       asin,
		Title:    title,
		Price:    price,
		Currency: currency,
		Rating:   rating,
		Reviews:  reviews,
		URL:      fmt.Sprintf("https://www.amazon.%s/dp/%s", domain, asin),
		ImageURL: image,
	}, true
}
