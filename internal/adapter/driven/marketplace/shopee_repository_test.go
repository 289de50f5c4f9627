package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

func TestShopeeSearchScalesPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "milk frother", r.URL.Query().Get("keyword"))
		fmt.Fprint(w, `{
			"items": [
				{"item_basic": {
					"itemid": 123456789,
					"shopid": 555,
					"name": "Electric Milk Frother",
					"price": 1599000000,
					"historical_sold": 3200,
					"image": "abc123",
					"item_rating": {"rating_star": 4.8, "rating_count": [950, 10, 20, 70, 150, 700]}
				}},
				{"item_basic": {"itemid": 0, "name": "ghost item"}}
			]
		}`)
	}))
	defer srv.Close()

	repo := NewShopeeRepository(budget.New(10, 0), quiet())
	repo.BaseURL = srv.URL

	records, err := repo.Search(context.Background(), types.MarketQuery{
		Keyword: "milk frother", Domain: "sg", MaxPages: 1,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "123456789", rec.ID)
	assert.Equal(t, "555", rec.ShopID)
	assert.InDelta(t, 15990.0, rec.Price, 1e-9)
	assert.Equal(t, "SGD", rec.Currency)
	assert.Equal(t, 3200, rec.Sold)
	assert.Equal(t, 950, rec.Reviews)
	assert.Contains(t, rec.URL, "shopee.sg/product/555/123456789")
	assert.Contains(t, rec.ImageURL, "abc123")
}

func TestShopeeDomainCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [{"item_basic": {"itemid": 1, "shopid": 2, "name": "x", "price": 500000}}]}`)
	}))
	defer srv.Close()

	repo := NewShopeeRepository(budget.New(10, 0), quiet())
	repo.BaseURL = srv.URL

	records, err := repo.Search(context.Background(), types.MarketQuery{Keyword: "x", Domain: "com.br"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BRL", records[0].Currency)
	assert.InDelta(t, 5.0, records[0].Price, 1e-9)
}

func TestShopeeFailedPageKeepsEarlierRecords(t *testing.T) {
	items := make([]string, shopeePageSize)
	for i := range items {
		items[i] = fmt.Sprintf(`{"item_basic": {"itemid": %d, "shopid": 9, "name": "bulk", "price": 100000}}`, i+1)
	}
	fullPage := `{"items": [` + strings.Join(items, ",") + `]}`

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, fullPage)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewShopeeRepository(budget.New(10, 0), quiet())
	repo.BaseURL = srv.URL

	records, err := repo.Search(context.Background(), types.MarketQuery{Keyword: "x", MaxPages: 2})
	require.NoError(t, err)
	assert.Len(t, records, shopeePageSize) // page 1 survived the page-2 failure
	assert.Equal(t, 2, calls)
}

func TestShopeeShortPageStopsPaging(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer srv.Close()

	repo := NewShopeeRepository(budget.New(10, 0), quiet())
	repo.BaseURL = srv.URL

	_, err := repo.Search(context.Background(), types.MarketQuery{Keyword: "x", MaxPages: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
