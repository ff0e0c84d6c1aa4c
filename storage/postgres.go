package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"iphone-catalog/models"
	"iphone-catalog/utils"
)

// Store owns the normalized catalog schema: one products table plus the
// color and memory variant tables.
type Store struct {
	db                *sql.DB
	featuredThreshold int64
	logger            *utils.Logger
}

// Open connects to PostgreSQL, runs schema migrations, and returns a
// ready-to-use Store. Products priced above featuredThreshold are marked
// featured by the maintenance pass.
func Open(dsn string, featuredThreshold int64, logger *utils.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: ping failed after retries: %w", err)
	}

	s := &Store{db: db, featuredThreshold: featuredThreshold, logger: logger}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id             SERIAL PRIMARY KEY,
			product_id     TEXT        UNIQUE NOT NULL,
			model          TEXT        NOT NULL,
			price          BIGINT      NOT NULL DEFAULT 0,
			currency       TEXT        NOT NULL DEFAULT 'RUB',
			old_price      TEXT        NOT NULL DEFAULT '',
			current_color  TEXT        NOT NULL DEFAULT '',
			current_memory TEXT        NOT NULL DEFAULT '',
			current_sim    TEXT        NOT NULL DEFAULT '',
			image_url      TEXT        NOT NULL DEFAULT '',
			product_url    TEXT        NOT NULL DEFAULT '',
			category       TEXT        NOT NULL DEFAULT 'iPhone',
			display_order  INT         NOT NULL DEFAULT 0,
			is_featured    BOOLEAN     NOT NULL DEFAULT FALSE,
			parsed_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS product_colors (
			id         SERIAL PRIMARY KEY,
			product_id TEXT NOT NULL,
			color_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS product_memory (
			id          SERIAL PRIMARY KEY,
			product_id  TEXT NOT NULL,
			memory_size TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_products_price       ON products(price);
		CREATE INDEX IF NOT EXISTS idx_products_category    ON products(category);
		CREATE INDEX IF NOT EXISTS idx_products_is_featured ON products(is_featured);
		CREATE INDEX IF NOT EXISTS idx_colors_product_id    ON product_colors(product_id);
		CREATE INDEX IF NOT EXISTS idx_memory_product_id    ON product_memory(product_id);
	`)
	return err
}

// UpsertBatch replaces each product row and its variant rows. One
// product is the unit of atomicity: a record that fails is rolled back
// and logged, and the batch continues. Returns how many records were
// committed.
func (s *Store) UpsertBatch(products []*models.Product) (int, error) {
	saved := 0
	var lastErr error

	for _, p := range products {
		if err := s.upsertOne(p); err != nil {
			s.logger.Error("[storage] Product %s not saved: %v", p.ProductID, err)
			lastErr = err
			continue
		}
		saved++
	}

	if saved == 0 && len(products) > 0 {
		return 0, fmt.Errorf("storage: no products saved: %w", lastErr)
	}
	return saved, nil
}

func (s *Store) upsertOne(p *models.Product) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO products
			(product_id, model, price, old_price, current_color,
			 current_memory, current_sim, image_url, product_url, parsed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (product_id) DO UPDATE SET
			model          = EXCLUDED.model,
			price          = EXCLUDED.price,
			old_price      = EXCLUDED.old_price,
			current_color  = EXCLUDED.current_color,
			current_memory = EXCLUDED.current_memory,
			current_sim    = EXCLUDED.current_sim,
			image_url      = EXCLUDED.image_url,
			product_url    = EXCLUDED.product_url,
			parsed_at      = EXCLUDED.parsed_at
	`, p.ProductID, p.Model, p.Price, p.OldPrice, p.CurrentColor,
		p.CurrentMemory, p.CurrentSIM, p.ImageURL, p.ProductURL, p.ParsedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	// Variant rows are fully replaced so no stale options from a
	// previous run survive a re-ingestion.
	if err := replaceVariants(tx, "product_colors", "color_name", p.ProductID, p.Colors); err != nil {
		return err
	}
	if err := replaceVariants(tx, "product_memory", "memory_size", p.ProductID, p.MemoryOptions); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceVariants(tx *sql.Tx, table, column, productID string, values []string) error {
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE product_id = $1", table), productID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(values) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(values))
	valueArgs := make([]interface{}, 0, len(values)*2)
	for idx, v := range values {
		base := idx * 2
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d)", base+1, base+2))
		valueArgs = append(valueArgs, productID, v)
	}

	query := fmt.Sprintf("INSERT INTO %s (product_id, %s) VALUES %s",
		table, column, strings.Join(valueStrings, ","))
	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// ApplyDerivedFields recomputes category, is_featured and display_order
// over the whole table. Run after every ingestion; category matching is
// ordered so "Pro Max" never falls through to "Pro".
func (s *Store) ApplyDerivedFields() error {
	_, err := s.db.Exec(`
		UPDATE products SET
			display_order = id,
			is_featured   = price > $1,
			category = CASE
				WHEN model LIKE '%Pro Max%' THEN 'iPhone Pro Max'
				WHEN model LIKE '%Pro%'     THEN 'iPhone Pro'
				WHEN model LIKE '%Plus%'    THEN 'iPhone Plus'
				WHEN model LIKE '%Б/У%'     THEN 'iPhone Б/У'
				ELSE 'iPhone'
			END
	`, s.featuredThreshold)
	if err != nil {
		return fmt.Errorf("storage: apply derived fields: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
