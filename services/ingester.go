package services

import (
	"io"
	"time"

	"iphone-catalog/models"
	"iphone-catalog/utils"
)

// Extractor turns one catalog document into product records.
type Extractor interface {
	ParseCatalog(r io.Reader) (*models.ParseResult, error)
}

// CatalogWriter is the write side of the catalog store.
type CatalogWriter interface {
	UpsertBatch(products []*models.Product) (int, error)
	ApplyDerivedFields() error
}

// RawDumper receives extracted records before persistence, for
// inspection. Optional.
type RawDumper interface {
	WriteProducts(products []*models.Product) error
}

// Ingester drives one ingestion run: extract, optionally dump, upsert,
// then recompute the derived columns.
type Ingester struct {
	extractor Extractor
	store     CatalogWriter
	dump      RawDumper
	logger    *utils.Logger
}

// NewIngester creates an Ingester. dump may be nil to skip the raw CSV
// step.
func NewIngester(extractor Extractor, store CatalogWriter, dump RawDumper, logger *utils.Logger) *Ingester {
	return &Ingester{extractor: extractor, store: store, dump: dump, logger: logger}
}

// Ingest runs one ingestion over the given document and always returns
// a summary. Success is false only when the document has no recognizable
// catalog structure or nothing could be persisted; individual bad cards
// and bad fields are absorbed and counted.
func (ing *Ingester) Ingest(r io.Reader) *models.IngestReport {
	report := &models.IngestReport{ParsedAt: time.Now()}

	result, err := ing.extractor.ParseCatalog(r)
	if err != nil {
		ing.logger.Error("[ingest] Extraction failed: %v", err)
		return report
	}

	report.ParsedAt = result.ParsedAt
	report.Total = len(result.Products)
	report.Skipped = result.Skipped

	if result.Cards == 0 {
		ing.logger.Error("[ingest] Document contains no product cards")
		return report
	}
	report.Success = true

	if report.Total == 0 {
		ing.logger.Warn("[ingest] %d cards found, none yielded a product", result.Cards)
		return report
	}

	if ing.dump != nil {
		if err := ing.dump.WriteProducts(result.Products); err != nil {
			ing.logger.Warn("[ingest] Raw dump failed: %v", err)
		}
	}

	saved, err := ing.store.UpsertBatch(result.Products)
	report.Saved = saved
	if err != nil {
		ing.logger.Error("[ingest] Persistence failed: %v", err)
		report.Success = false
		return report
	}
	if saved < report.Total {
		ing.logger.Warn("[ingest] Partial save: %d of %d products", saved, report.Total)
	}

	if err := ing.store.ApplyDerivedFields(); err != nil {
		ing.logger.Error("[ingest] Derived-field maintenance failed: %v", err)
	}

	ing.logger.Info("[ingest] Run complete — %d extracted, %d saved, %d cards skipped",
		report.Total, report.Saved, report.Skipped)
	return report
}
