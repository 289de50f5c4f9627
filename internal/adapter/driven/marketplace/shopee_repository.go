package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// shopeePriceDivisor: the search API reports prices as integer
// hundred-thousandths of the currency unit.
const shopeePriceDivisor = 100000

const shopeePageSize = 50

// currencyByShopeeDomain maps a storefront TLD to its quote currency.
var currencyByShopeeDomain = map[string]string{
	"sg": "SGD", "com.my": "MYR", "co.th": "THB", "vn": "VND",
	"ph": "PHP", "co.id": "IDR", "com.br": "BRL", "tw": "TWD",
}

// ShopeeRepositoryImpl queries the Shopee search API.
type ShopeeRepositoryImpl struct {
	BaseURL string

	client  *http.Client
	budget  *budget.CallBudget
	console types.ConsoleInterface
}

var _ repository.MarketplaceRepository = (*ShopeeRepositoryImpl)(nil)

func NewShopeeRepository(b *budget.CallBudget, console types.ConsoleInterface) *ShopeeRepositoryImpl {
	return &ShopeeRepositoryImpl{
		client:  &http.Client{Timeout: 20 * time.Second},
		budget:  b,
		console: console,
	}
}

func (r *ShopeeRepositoryImpl) Source() entity.ProductSource { return entity.SourceShopee }

type shopeeSearchResponse struct {
	Items []struct {
		ItemBasic struct {
			ItemID         int64  `json:"itemid"`
			ShopID         int64  `json:"shopid"`
			Name           string `json:"name"`
			Price          int64  `json:"price"`
			HistoricalSold int    `json:"historical_sold"`
			Image          string `json:"image"`
			ItemRating     struct {
				RatingStar  float64 `json:"rating_star"`
				RatingCount []int   `json:"rating_count"`
			} `json:"item_rating"`
		} `json:"item_basic"`
	} `json:"items"`
}

// Search pages through search results, one budget call per page, until a
// short page or q.MaxPages. A page that fails transiently is logged and
// counted as empty.
func (r *ShopeeRepositoryImpl) Search(ctx context.Context, q types.MarketQuery) ([]entity.ProductRecord, error) {
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}
	domain := q.Domain
	if domain == "" {
		domain = "sg"
	}

	var records []entity.ProductRecord
	for page := 0; page < maxPages; page++ {
		if err := r.budget.Spend(); err != nil {
			return records, err
		}

		resp, err := r.fetchPage(ctx, q.Keyword, domain, page*shopeePageSize)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			r.console.LogWarning("shopee page %d failed, treating as empty: %v", page+1, err)
			r.budget.Cooldown()
			continue
		}

		for _, it := range resp.Items {
			b := it.ItemBasic
			if b.ItemID == 0 {
				continue
			}
			currency := currencyByShopeeDomain[domain]
			if currency == "" {
				currency = "SGD"
			}
			records = append(records, entity.ProductRecord{
				Source:   entity.SourceShopee,
				ID:       strconv.FormatInt(b.ItemID, 10),
				ShopID:   strconv.FormatInt(b.ShopID, 10),
				Title:    b.Name,
				Price:    float64(b.Price) / shopeePriceDivisor,
				Currency: currency,
				Rating:   b.ItemRating.RatingStar,
				Reviews:  totalRatings(b.ItemRating.RatingCount),
				Sold:     b.HistoricalSold,
				URL:      fmt.Sprintf("https://shopee.%s/product/%d/%d", domain, b.ShopID, b.ItemID),
				ImageURL: imageURL(b.Image),
			})
		}
		if len(resp.Items) < shopeePageSize {
			break
		}
		r.budget.Cooldown()
	}
	return records, nil
}

func (r *ShopeeRepositoryImpl) fetchPage(ctx context.Context, keyword, domain string, offset int) (*shopeeSearchResponse, error) {
	base := r.BaseURL
	if base == "" {
		base = "https://shopee." + domain
	}

	params := url.Values{}
	params.Set("by", "relevancy")
	params.Set("keyword", keyword)
	params.Set("limit", strconv.Itoa(shopeePageSize))
	params.Set("newest", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/v4/search/search_items?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", base)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopee returned HTTP %d", resp.StatusCode)
	}

	var out shopeeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// totalRatings: rating_count[0] is the all-star total when present.
func totalRatings(counts []int) int {
	if len(counts) > 0 {
		return counts[0]
	}
	return 0
}

func imageURL(hash string) string {
	if hash == "" {
		return ""
	}
	return "https://down-sg.img.susercontent.com/file/" + hash
}
