package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"iphone-catalog/models"
)

// CSVWriter dumps extracted product records to a CSV file so an
// ingestion run can be inspected without touching the database.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"product_id", "model", "price", "old_price",
		"current_color", "colors", "current_memory", "memory_options",
		"current_sim", "sim_options", "image_url", "product_url", "parsed_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteProducts appends one row per extracted product. Variant lists are
// pipe-joined so commas inside option names cannot break the columns.
func (c *CSVWriter) WriteProducts(products []*models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range products {
		row := []string{
			p.ProductID,
			p.Model,
			strconv.FormatInt(p.Price, 10),
			p.OldPrice,
			p.CurrentColor,
			strings.Join(p.Colors, "|"),
			p.CurrentMemory,
			strings.Join(p.MemoryOptions, "|"),
			p.CurrentSIM,
			strings.Join(p.SIMOptions, "|"),
			p.ImageURL,
			p.ProductURL,
			p.ParsedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
