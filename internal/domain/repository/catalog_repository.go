package repository

import "github.com/dysin/market-insights-go/internal/domain/entity"

// CatalogRepository loads the cost-analysis input tables: the sourced
// product catalog, the logistics offers, and the order lines to price.
type CatalogRepository interface {
	LoadProducts(path string) ([]entity.Product, error)
	LoadLogistics(path string) ([]entity.LogisticsOption, error)
	LoadOrders(path string) ([]entity.OrderLine, error)
}
