package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"iphone-catalog/config"
	"iphone-catalog/models"
	"iphone-catalog/scraper/storefront"
	"iphone-catalog/services"
	"iphone-catalog/storage"
	"iphone-catalog/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Storefront Catalog Ingestion starting ===")
	logger.Info("Config — origin: %s | featured above: %s | retries: %d",
		cfg.BaseOrigin, services.FormatPrice(cfg.FeaturedPriceMin), cfg.MaxRetries)

	store, err := storage.Open(cfg.DSN(), cfg.FeaturedPriceMin, logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	var dump services.RawDumper
	if cfg.CSVDumpPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVDumpPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			os.Exit(1)
		}
		defer csvWriter.Close()
		dump = csvWriter
	}

	document, err := openCatalogDocument(cfg, logger)
	if err != nil {
		logger.Error("Failed to open catalog document: %v", err)
		os.Exit(1)
	}

	parser := storefront.NewParser(cfg.BaseOrigin, logger)
	ingester := services.NewIngester(parser, store, dump, logger)

	report := ingester.Ingest(document)
	if closer, ok := document.(io.Closer); ok {
		closer.Close()
	}

	if !report.Success {
		logger.Error("Ingestion run failed — no catalog structure or nothing saved")
		os.Exit(1)
	}

	logger.Info("Ingested %d products (%d saved, %d cards skipped) at %s",
		report.Total, report.Saved, report.Skipped, report.ParsedAt.Format("2006-01-02 15:04:05"))

	products, err := store.ListProducts(storage.ListOptions{Category: storage.CategoryAll})
	if err != nil {
		logger.Error("Failed to read catalog back for the summary: %v", err)
		os.Exit(1)
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(reportSvc.Generate(products))

	printSample(products)

	fmt.Printf("  Done. Raw dump → %s | Catalog → PostgreSQL (products table)\n\n",
		cfg.CSVDumpPath)
}

// openCatalogDocument fetches the catalog page when a URL is configured,
// otherwise reads the local HTML snapshot.
func openCatalogDocument(cfg *config.Config, logger *utils.Logger) (io.Reader, error) {
	if cfg.CatalogURL != "" {
		fetcher := storefront.NewFetcher(cfg.MaxRetries, logger)
		return fetcher.FetchCatalog(context.Background(), cfg.CatalogURL)
	}

	logger.Info("No CATALOG_URL set — reading snapshot %s", cfg.CatalogFile)
	return os.Open(cfg.CatalogFile)
}

// printSample shows the first few ingested products for a quick check.
func printSample(products []*models.CatalogProduct) {
	limit := 5
	if len(products) < limit {
		limit = len(products)
	}
	for i := 0; i < limit; i++ {
		p := products[i]
		fmt.Printf("  %s — %s | %s | %s\n",
			p.ProductID, p.ShortModel, p.FormattedPrice, p.CurrentColor)
	}
}
