package models

import "time"

// Sentinel values written when extraction cannot recover a field.
// Consumers must treat them as missing data, not as business values.
const (
	UnknownModel = "Неизвестно"
	NoColor      = "Не указан"
	NoMemory     = "Не указана"
	NoSIM        = "Не указано"
)

// Product is the normalized record extracted from one catalog card,
// ready for storage. Price 0 and UnknownModel mark unrecovered fields.
type Product struct {
	ProductID     string
	Model         string
	Price         int64
	OldPrice      string
	CurrentColor  string
	CurrentMemory string
	CurrentSIM    string
	Colors        []string
	MemoryOptions []string
	SIMOptions    []string
	ImageURL      string
	ProductURL    string
	ParsedAt      time.Time
}

// CatalogProduct is the read-side view of a product: stored columns plus
// aggregated variant lists and cosmetic fields recomputed on every read.
type CatalogProduct struct {
	ProductID     string
	Model         string
	Price         int64
	OldPrice      string
	CurrentColor  string
	CurrentMemory string
	CurrentSIM    string
	ImageURL      string
	ProductURL    string
	Category      string
	DisplayOrder  int
	IsFeatured    bool

	Colors        []string
	MemoryOptions []string

	FormattedPrice string
	ShortModel     string
}

// Category is one derived product category with its product count.
type Category struct {
	Name  string
	Count int
}

// ParseResult holds the outcome of extracting one catalog document.
type ParseResult struct {
	Products []*Product
	Cards    int
	Skipped  int
	ParsedAt time.Time
}

// IngestReport summarizes one ingestion run. Success reflects whether the
// document had a recognizable catalog structure, not whether every card
// parsed.
type IngestReport struct {
	Total    int
	Saved    int
	Skipped  int
	Success  bool
	ParsedAt time.Time
}

// CatalogReport holds the computed summary over the stored catalog.
type CatalogReport struct {
	TotalProducts      int
	PricedProducts     int
	MissingPrice       int
	FeaturedProducts   int
	AveragePrice       int64
	MinPrice           int64
	MaxPrice           int64
	MostExpensive      *CatalogProduct
	TopPriced          []*CatalogProduct
	ProductsByCategory map[string]int
}
