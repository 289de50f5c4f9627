package entity

// PlaceRecord is the canonical shape of one business found by a nearby
// search, already enriched and ready for export. Records without a PlaceID
// never reach this type; normalization drops them.
type PlaceRecord struct {
	PlaceID      string  `json:"place_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Rating       float64 `json:"rating"`
	RatingsTotal int     `json:"ratings_total"`
	Website      string  `json:"website"`
	Email        string  `json:"email"`
}

// ProductSource identifies the marketplace a product record came from.
type ProductSource string

const (
	SourceAmazon  ProductSource = "amazon"
	SourceShopee  ProductSource = "shopee"
	SourceAlibaba ProductSource = "alibaba"
)

// ProductRecord is the canonical shape of one marketplace listing.
type ProductRecord struct {
	Source   ProductSource `json:"source"`
	ID       string        `json:"id"` // ASIN, item id, or listing URL hash
	ShopID   string        `json:"shop_id,omitempty"`
	Title    string        `json:"title"`
	Price    float64       `json:"price"`
	Currency string        `json:"currency"`
	Rating   float64       `json:"rating"`
	Reviews  int           `json:"reviews"`
	Sold     int           `json:"sold"`
	URL      string        `json:"url"`
	ImageURL string        `json:"image_url,omitempty"`
}
