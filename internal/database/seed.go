package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a small demo catalog, and two published templates so the
// storefront shows the builder working out of the box. The admin will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@shopwright.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedSettings(db); err != nil {
		return err
	}
	if err := seedCatalog(db); err != nil {
		return err
	}
	if err := seedTemplates(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@shopwright.local",
		"password", "admin",
	)

	return nil
}

func seedSettings(db *sql.DB) error {
	settings := map[string]string{
		"shop_name":       "Shopwright Demo Store",
		"builder_enabled": "true",
	}
	for k, v := range settings {
		if _, err := db.Exec(`
			INSERT INTO site_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, k, v); err != nil {
			return fmt.Errorf("seed setting %s: %w", k, err)
		}
	}
	return nil
}

// seedCatalog inserts two categories, one tag, and three demo products.
func seedCatalog(db *sql.DB) error {
	terms := []struct {
		taxonomy, name, slug string
	}{
		{"product_category", "Desks", "desks"},
		{"product_category", "Chairs", "chairs"},
		{"product_tag", "Handmade", "handmade"},
	}
	termIDs := make(map[string]int64)
	for _, t := range terms {
		var id int64
		err := db.QueryRow(`
			INSERT INTO terms (taxonomy, name, slug) VALUES ($1, $2, $3)
			RETURNING id
		`, t.taxonomy, t.name, t.slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed term %s: %w", t.slug, err)
		}
		termIDs[t.slug] = id
	}

	products := []struct {
		title, slug, ptype, desc string
		price                    int64
		salePrice                *int64
		stock                    string
		terms                    []string
	}{
		{
			title: "Walnut Desk", slug: "walnut-desk", ptype: "simple",
			desc: "Solid walnut writing desk with two drawers.", price: 64900,
			stock: "instock", terms: []string{"desks", "handmade"},
		},
		{
			title: "Oak Office Chair", slug: "oak-office-chair", ptype: "simple",
			desc: "Ergonomic oak chair with wool upholstery.", price: 32900,
			salePrice: int64Ptr(27900), stock: "instock", terms: []string{"chairs"},
		},
		{
			title: "Standing Desk Frame", slug: "standing-desk-frame", ptype: "variable",
			desc: "Height-adjustable frame, top sold separately.", price: 44900,
			stock: "outofstock", terms: []string{"desks"},
		},
	}
	for _, p := range products {
		var id int64
		err := db.QueryRow(`
			INSERT INTO products (title, slug, type, description, price, sale_price, stock_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, p.title, p.slug, p.ptype, p.desc, p.price, p.salePrice, p.stock).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.slug, err)
		}
		for _, slug := range p.terms {
			if _, err := db.Exec(`
				INSERT INTO product_terms (product_id, term_id) VALUES ($1, $2)
			`, id, termIDs[slug]); err != nil {
				return fmt.Errorf("seed product term %s/%s: %w", p.slug, slug, err)
			}
		}
	}
	return nil
}

// seedTemplates inserts a published single-product template and a
// published shop-archive template, both matching everything.
func seedTemplates(db *sql.DB) error {
	templates := []struct {
		title, slug, ptype, conditions, content string
	}{
		{
			title: "Default Product Page", slug: "default-product-page",
			ptype:      "single-product",
			conditions: `[{"kind":"all","mode":"include"}]`,
			content: `[{"id":"s1","elType":"section","elements":[
				{"id":"c1","elType":"column","elements":[
					{"id":"w1","elType":"widget","widgetType":"product-image"}
				]},
				{"id":"c2","elType":"column","elements":[
					{"id":"w2","elType":"widget","widgetType":"product-title"},
					{"id":"w3","elType":"widget","widgetType":"product-price"},
					{"id":"w4","elType":"widget","widgetType":"product-add-to-cart"},
					{"id":"w5","elType":"widget","widgetType":"product-meta"}
				]}
			]}]`,
		},
		{
			title: "Default Shop Archive", slug: "default-shop-archive",
			ptype:      "archive-product",
			conditions: `[{"kind":"all","mode":"include"}]`,
			content: `[{"id":"s1","elType":"section","elements":[
				{"id":"c1","elType":"column","elements":[
					{"id":"w1","elType":"widget","widgetType":"heading","settings":{"title":"Shop","level":"h1"}},
					{"id":"w2","elType":"widget","widgetType":"product-grid"}
				]}
			]}]`,
		},
	}
	for _, t := range templates {
		if _, err := db.Exec(`
			INSERT INTO templates (title, slug, type, status, priority, conditions, content)
			VALUES ($1, $2, $3, 'published', 10, $4, $5)
		`, t.title, t.slug, t.ptype, t.conditions, t.content); err != nil {
			return fmt.Errorf("seed template %s: %w", t.slug, err)
		}
	}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }
