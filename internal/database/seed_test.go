package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when no users exist yet. Other test packages
	// may be running concurrently against the same database, so record
	// whether this call is the one that seeds.
	var preCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&preCount); err != nil {
		t.Fatalf("count users: %v", err)
	}

	// Calling twice must be safe either way.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	if preCount > 0 {
		return
	}

	// Verify admin user exists.
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'admin@shopwright.local'").Scan(&userCount); err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 admin user, got %d", userCount)
	}

	// Verify the demo catalog exists.
	var productCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&productCount); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if productCount < 1 {
		t.Errorf("expected at least 1 product, got %d", productCount)
	}

	// Verify the default templates exist and are published.
	var tmplCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM templates WHERE status = 'published'").Scan(&tmplCount); err != nil {
		t.Fatalf("count templates: %v", err)
	}
	if tmplCount < 1 {
		t.Errorf("expected at least 1 published template, got %d", tmplCount)
	}
}
