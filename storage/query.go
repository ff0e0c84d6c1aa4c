package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"iphone-catalog/models"
	"iphone-catalog/services"
)

// Sort keys accepted by ListProducts. Anything else falls back to the
// insertion-order display_order.
const (
	SortPriceDesc = "price_desc"
	SortPriceAsc  = "price_asc"
	SortName      = "name"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// ListOptions enumerates every legal filter/sort combination for the
// catalog listing. The zero value means: all categories, no search,
// price descending.
type ListOptions struct {
	Category string
	Sort     string
	Search   string
}

// listColumns is shared by the listing and by-id queries so both go
// through the same aggregation and row shaping.
const listColumns = `
	SELECT p.product_id, p.model, p.price, p.old_price, p.current_color,
	       p.current_memory, p.current_sim, p.image_url, p.product_url,
	       p.category, p.display_order, p.is_featured,
	       COALESCE(string_agg(DISTINCT c.color_name, ','), '')  AS all_colors,
	       COALESCE(string_agg(DISTINCT m.memory_size, ','), '') AS all_memory
	FROM products p
	LEFT JOIN product_colors c ON p.product_id = c.product_id
	LEFT JOIN product_memory m ON p.product_id = m.product_id`

// buildListQuery composes the catalog listing query from the enumerated
// option set. Filters are always bound as parameters, never spliced into
// the SQL text.
func buildListQuery(opts ListOptions) (string, []interface{}) {
	var query strings.Builder
	query.WriteString(listColumns)

	var conditions []string
	var args []interface{}

	if opts.Category != "" && opts.Category != CategoryAll {
		args = append(args, opts.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
		conditions = append(conditions, fmt.Sprintf("(p.model LIKE $%d OR p.current_color LIKE $%d)",
			len(args)-1, len(args)))
	}
	if len(conditions) > 0 {
		query.WriteString("\n\tWHERE " + strings.Join(conditions, " AND "))
	}

	query.WriteString("\n\tGROUP BY p.id")

	switch opts.Sort {
	case SortPriceAsc:
		query.WriteString("\n\tORDER BY p.price ASC")
	case SortPriceDesc:
		query.WriteString("\n\tORDER BY p.price DESC")
	case SortName:
		query.WriteString("\n\tORDER BY p.model ASC")
	default:
		query.WriteString("\n\tORDER BY p.display_order ASC")
	}

	return query.String(), args
}

// ListProducts returns catalog products with their aggregated variant
// lists, filtered and sorted per opts. An empty sort key means price
// descending.
func (s *Store) ListProducts(opts ListOptions) ([]*models.CatalogProduct, error) {
	if opts.Sort == "" {
		opts.Sort = SortPriceDesc
	}

	query, args := buildListQuery(opts)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list products: %w", err)
	}
	defer rows.Close()

	var products []*models.CatalogProduct
	for rows.Next() {
		p, err := scanCatalogProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ProductByID returns one product with the same aggregation and shaping
// as ListProducts, or (nil, nil) when the id is unknown.
func (s *Store) ProductByID(productID string) (*models.CatalogProduct, error) {
	query := listColumns + "\n\tWHERE p.product_id = $1\n\tGROUP BY p.id"

	p, err := scanCatalogProduct(s.db.QueryRow(query, productID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: product %s: %w", productID, err)
	}
	return p, nil
}

// ListCategories returns the derived categories with product counts,
// most populated first.
func (s *Store) ListCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*) AS count
		FROM products
		GROUP BY category
		ORDER BY count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("storage: scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FeaturedProducts returns the top-priced featured products.
func (s *Store) FeaturedProducts(limit int) ([]*models.CatalogProduct, error) {
	rows, err := s.db.Query(`
		SELECT product_id, model, price, old_price, current_color,
		       current_memory, current_sim, image_url, product_url,
		       category, display_order, is_featured
		FROM products
		WHERE is_featured
		ORDER BY price DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: featured products: %w", err)
	}
	defer rows.Close()

	var products []*models.CatalogProduct
	for rows.Next() {
		p := &models.CatalogProduct{}
		if err := rows.Scan(
			&p.ProductID, &p.Model, &p.Price, &p.OldPrice, &p.CurrentColor,
			&p.CurrentMemory, &p.CurrentSIM, &p.ImageURL, &p.ProductURL,
			&p.Category, &p.DisplayOrder, &p.IsFeatured,
		); err != nil {
			return nil, fmt.Errorf("storage: scan featured: %w", err)
		}
		shapeProduct(p, "", "")
		products = append(products, p)
	}
	return products, rows.Err()
}

// rowScanner lets scanCatalogProduct serve both Query and QueryRow.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCatalogProduct(row rowScanner) (*models.CatalogProduct, error) {
	p := &models.CatalogProduct{}
	var allColors, allMemory string

	if err := row.Scan(
		&p.ProductID, &p.Model, &p.Price, &p.OldPrice, &p.CurrentColor,
		&p.CurrentMemory, &p.CurrentSIM, &p.ImageURL, &p.ProductURL,
		&p.Category, &p.DisplayOrder, &p.IsFeatured,
		&allColors, &allMemory,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("storage: scan product: %w", err)
	}

	shapeProduct(p, allColors, allMemory)
	return p, nil
}

// shapeProduct expands the comma-joined variant aggregates back into
// lists and attaches the cosmetic display fields. A product with no
// variant rows still exposes its current color/memory as a single-entry
// list when that field is known.
func shapeProduct(p *models.CatalogProduct, allColors, allMemory string) {
	switch {
	case allColors != "":
		p.Colors = strings.Split(allColors, ",")
	case p.CurrentColor != "":
		p.Colors = []string{p.CurrentColor}
	}

	switch {
	case allMemory != "":
		p.MemoryOptions = strings.Split(allMemory, ",")
	case p.CurrentMemory != "":
		p.MemoryOptions = []string{p.CurrentMemory}
	}

	p.FormattedPrice = services.FormatPrice(p.Price)
	p.ShortModel = services.ShortModel(p.Model)
}
