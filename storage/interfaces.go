package storage

import "iphone-catalog/models"

// CatalogReader is the read API consumed by presentation adapters
// (web front end, chat bot). It never mutates the catalog.
type CatalogReader interface {
	ListProducts(opts ListOptions) ([]*models.CatalogProduct, error)
	ListCategories() ([]models.Category, error)
	FeaturedProducts(limit int) ([]*models.CatalogProduct, error)
	ProductByID(productID string) (*models.CatalogProduct, error)
}

// RawWriter is the interface for dumping extracted records before they
// are persisted.
type RawWriter interface {
	WriteProducts(products []*models.Product) error
	Close() error
}
