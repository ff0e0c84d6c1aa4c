package services

import (
	"fmt"
	"sort"
	"strings"

	"iphone-catalog/models"
	"iphone-catalog/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes a summary over the stored catalog. Products with the
// price sentinel (0) are counted as missing data and excluded from the
// price statistics.
func (s *ReportService) Generate(products []*models.CatalogProduct) *models.CatalogReport {
	report := &models.CatalogReport{
		ProductsByCategory: make(map[string]int),
	}

	if len(products) == 0 {
		return report
	}

	report.TotalProducts = len(products)

	var priced []*models.CatalogProduct
	for _, p := range products {
		if p.Price > 0 {
			priced = append(priced, p)
		} else {
			report.MissingPrice++
		}
		if p.IsFeatured {
			report.FeaturedProducts++
		}
		report.ProductsByCategory[p.Category]++
	}
	report.PricedProducts = len(priced)

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		var total int64
		for _, p := range priced {
			total += p.Price
			if p.Price < report.MinPrice {
				report.MinPrice = p.Price
			}
			if p.Price > report.MaxPrice {
				report.MaxPrice = p.Price
				report.MostExpensive = p
			}
		}
		if report.MostExpensive == nil {
			report.MostExpensive = priced[0]
		}
		report.AveragePrice = total / int64(len(priced))
	}

	// Top 5 by price
	sorted := make([]*models.CatalogProduct, len(priced))
	copy(sorted, priced)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})
	if len(sorted) > 5 {
		report.TopPriced = sorted[:5]
	} else {
		report.TopPriced = sorted
	}

	return report
}

func (s *ReportService) Print(r *models.CatalogReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📱 CATALOG INGESTION SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Products in catalog : \033[1m%d\033[0m\n", r.TotalProducts)
	fmt.Printf("  With a price        : \033[1m%d\033[0m\n", r.PricedProducts)
	fmt.Printf("  Missing price       : \033[1m%d\033[0m\n", r.MissingPrice)
	fmt.Printf("  Featured            : \033[1m%d\033[0m\n", r.FeaturedProducts)
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.PricedProducts > 0 {
		fmt.Printf("  Average price : \033[1;32m%s\033[0m\n", FormatPrice(r.AveragePrice))
		fmt.Printf("  Minimum price : \033[1;32m%s\033[0m\n", FormatPrice(r.MinPrice))
		fmt.Printf("  Maximum price : \033[1;32m%s\033[0m\n", FormatPrice(r.MaxPrice))
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Most Expensive
	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Product\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", ShortModel(r.MostExpensive.Model))
		fmt.Printf("  Category : %s\n", r.MostExpensive.Category)
		fmt.Printf("  Price    : \033[1;31m%s\033[0m\n", FormatPrice(r.MostExpensive.Price))
		fmt.Println()
	}

	// Top 5 by price
	fmt.Printf("\033[1;33m  Top 5 Most Expensive\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopPriced) == 0 {
		fmt.Printf("  No priced products found\n")
	} else {
		for i, p := range r.TopPriced {
			fmt.Printf("  \033[1m%d.\033[0m %-34s \033[1;32m%s\033[0m\n",
				i+1, ShortModel(p.Model), FormatPrice(p.Price))
		}
	}
	fmt.Println()

	// Products by Category
	fmt.Printf("\033[1;33m  Products by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ProductsByCategory) == 0 {
		fmt.Printf("  No category data\n")
	} else {
		type catCount struct {
			name  string
			count int
		}
		var cats []catCount
		for name, cnt := range r.ProductsByCategory {
			cats = append(cats, catCount{name, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			return cats[i].count > cats[j].count
		})
		for _, c := range cats {
			bar := strings.Repeat("█", c.count)
			fmt.Printf("  %-22s %s (%d)\n", c.name, bar, c.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
