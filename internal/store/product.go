// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"shopwright/internal/models"
)

// ProductStore handles catalog database operations. The storefront
// handlers use it to build the per-request context the condition engine
// evaluates against.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, title, slug, type, description, price, sale_price, stock_status, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Type, &p.Description,
		&p.Price, &p.SalePrice, &p.StockStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBySlug retrieves a product with its terms attached. Returns nil
// if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	if err := s.attachTerms(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a product with its terms attached. Returns nil if
// not found.
func (s *ProductStore) FindByID(id int64) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	if err := s.attachTerms(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every product ordered by title (the shop archive).
func (s *ProductStore) List() ([]models.Product, error) {
	return s.query(`SELECT `+productColumns+` FROM products ORDER BY title`, "list products")
}

// ListByTerm returns products attached to one term (a taxonomy archive).
func (s *ProductStore) ListByTerm(termID int64) ([]models.Product, error) {
	return s.query(`
		SELECT p.id, p.title, p.slug, p.type, p.description, p.price,
		       p.sale_price, p.stock_status, p.created_at, p.updated_at
		FROM products p
		JOIN product_terms pt ON pt.product_id = p.id
		WHERE pt.term_id = $1
		ORDER BY p.title`, "list products by term", termID)
}

func (s *ProductStore) query(q, op string, args ...any) ([]models.Product, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// attachTerms loads the product's category and tag terms.
func (s *ProductStore) attachTerms(p *models.Product) error {
	rows, err := s.db.Query(`
		SELECT t.id, t.taxonomy, t.name, t.slug, t.parent_id
		FROM terms t
		JOIN product_terms pt ON pt.term_id = t.id
		WHERE pt.product_id = $1
		ORDER BY t.taxonomy, t.name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load product terms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.Taxonomy, &t.Name, &t.Slug, &t.ParentID); err != nil {
			return fmt.Errorf("scan term: %w", err)
		}
		p.Terms = append(p.Terms, t)
	}
	return rows.Err()
}

// Count returns the total number of products.
func (s *ProductStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// TermStore handles category and tag lookups.
type TermStore struct {
	db *sql.DB
}

// NewTermStore creates a new TermStore with the given database connection.
func NewTermStore(db *sql.DB) *TermStore {
	return &TermStore{db: db}
}

// FindBySlug retrieves a term within one taxonomy. Returns nil if not found.
func (s *TermStore) FindBySlug(tax models.Taxonomy, slug string) (*models.Term, error) {
	var t models.Term
	err := s.db.QueryRow(`
		SELECT id, taxonomy, name, slug, parent_id FROM terms
		WHERE taxonomy = $1 AND slug = $2
	`, tax, slug).Scan(&t.ID, &t.Taxonomy, &t.Name, &t.Slug, &t.ParentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find term by slug: %w", err)
	}
	return &t, nil
}

// List returns all terms of one taxonomy ordered by name.
func (s *TermStore) List(tax models.Taxonomy) ([]models.Term, error) {
	rows, err := s.db.Query(`
		SELECT id, taxonomy, name, slug, parent_id FROM terms
		WHERE taxonomy = $1 ORDER BY name
	`, tax)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.Taxonomy, &t.Name, &t.Slug, &t.ParentID); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
