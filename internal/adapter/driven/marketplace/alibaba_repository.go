package marketplace

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/textextract"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// alibabaOffer is the shape the in-page extraction script returns for one
// listing card.
type alibabaOffer struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	URL      string `json:"url"`
	ImageURL string `json:"image"`
	Rating   string `json:"rating"`
	Sold     string `json:"sold"`
}

// extractOffersJS collects the offer cards off a rendered search page.
// Selectors track the organic gallery layout and need occasional upkeep.
const extractOffersJS = `
(() => {
	const cards = document.querySelectorAll('.fy23-search-card, .organic-gallery-offer-outter, .J-offer-wrapper');
	return Array.from(cards).map(card => {
		const pick = sel => { const el = card.querySelector(sel); return el ? el.textContent.trim() : ''; };
		const link = card.querySelector('a[href*="/product-detail/"], h2 a, .elements-title-normal');
		const img = card.querySelector('img');
		return {
			title: pick('.search-card-e-title, h2, .elements-title-normal__content'),
			price: pick('.search-card-e-price-main, .elements-offer-price-normal__price'),
			url: link && link.href ? link.href : '',
			image: img && img.src ? img.src : '',
			rating: pick('.search-card-e-review, .seb-supplier-review__score'),
			sold: pick('.search-card-e-sold, .element-offer-sold')
		};
	});
})()
`

// AlibabaRepositoryImpl drives a headless browser over Alibaba search
// results; the listing grid only exists after client-side rendering.
type AlibabaRepositoryImpl struct {
	// NavigateTimeout caps one page render.
	NavigateTimeout time.Duration

	budget  *budget.CallBudget
	console types.ConsoleInterface
	// extract lets tests stub the browser session.
	extract func(ctx context.Context, url string) ([]alibabaOffer, error)
}

var _ repository.MarketplaceRepository = (*AlibabaRepositoryImpl)(nil)

func NewAlibabaRepository(b *budget.CallBudget, console types.ConsoleInterface) *AlibabaRepositoryImpl {
	r := &AlibabaRepositoryImpl{
		NavigateTimeout: 45 * time.Second,
		budget:          b,
		console:         console,
	}
	r.extract = r.extractWithBrowser
	return r
}

func (r *AlibabaRepositoryImpl) Source() entity.ProductSource { return entity.SourceAlibaba }

// Search renders up to q.MaxPages search pages and normalizes the offer
// cards. One budget call per rendered page; a page that fails to render
// is logged and counted as empty.
func (r *AlibabaRepositoryImpl) Search(ctx context.Context, q types.MarketQuery) ([]entity.ProductRecord, error) {
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var records []entity.ProductRecord
	for page := 1; page <= maxPages; page++ {
		if err := r.budget.Spend(); err != nil {
			return records, err
		}

		url := fmt.Sprintf("https://www.alibaba.com/trade/search?SearchText=%s&page=%d",
			strings.ReplaceAll(strings.TrimSpace(q.Keyword), " ", "+"), page)
		offers, err := r.extract(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			r.console.LogWarning("alibaba page %d failed, treating as empty: %v", page, err)
			r.budget.Cooldown()
			continue
		}
		if len(offers) == 0 {
			break
		}

		for _, o := range offers {
			rec, ok := normalizeAlibaba(o)
			if !ok {
				continue
			}
			records = append(records, rec)
		}
		r.budget.Cooldown()
	}
	return records, nil
}

func (r *AlibabaRepositoryImpl) extractWithBrowser(ctx context.Context, url string) ([]alibabaOffer, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, r.NavigateTimeout)
	defer cancel()

	var offers []alibabaOffer
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(3*time.Second), // let the gallery hydrate
		chromedp.Evaluate(extractOffersJS, &offers),
	)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// normalizeAlibaba maps a raw offer card onto a ProductRecord. Cards with
// no product URL carry no stable identity and are dropped.
func normalizeAlibaba(o alibabaOffer) (entity.ProductRecord, bool) {
	u := strings.TrimSpace(o.URL)
	if u == "" {
		return entity.ProductRecord{}, false
	}

	price, _ := textextract.Price(o.Price)
	sum := sha1.Sum([]byte(u))

	return entity.ProductRecord{
		Source:   entity.SourceAlibaba,
		ID:       hex.EncodeToString(sum[:8]),
		Title:    strings.TrimSpace(o.Title),
		Price:    price,
		Currency: "USD",
		Rating:   textextract.Rating(o.Rating),
		Sold:     textextract.Number(o.Sold),
		URL:      u,
		ImageURL: strings.TrimSpace(o.ImageURL),
	}, true
}
