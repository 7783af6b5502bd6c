// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ProductType mirrors the classic storefront product taxonomy.
type ProductType string

const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeVariable ProductType = "variable"
	ProductTypeGrouped  ProductType = "grouped"
	ProductTypeExternal ProductType = "external"
)

// StockStatus is the string form templates and conditions compare against.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "instock"
	StockStatusOutOfStock StockStatus = "outofstock"
)

// Taxonomy distinguishes the two term trees products can carry.
type Taxonomy string

const (
	TaxonomyCategory Taxonomy = "product_category"
	TaxonomyTag      Taxonomy = "product_tag"
)

// Product is a catalog item. Conditions match against its type, stock
// status, sale state, id, and attached terms.
type Product struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Type        ProductType `json:"type"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`      // minor units
	SalePrice   *int64      `json:"sale_price"` // nil when not on sale
	StockStatus StockStatus `json:"stock_status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Terms are populated by store methods that join product_terms.
	Terms []Term `json:"terms,omitempty"`
}

// OnSale reports whether the product currently has a sale price set
// below the regular price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.Price
}

// InStock reports whether the product can be purchased.
func (p *Product) InStock() bool {
	return p.StockStatus == StockStatusInStock
}

// TermsFor returns the product's terms belonging to one taxonomy.
func (p *Product) TermsFor(tax Taxonomy) []Term {
	var out []Term
	for _, t := range p.Terms {
		if t.Taxonomy == tax {
			out = append(out, t)
		}
	}
	return out
}

// Term is a category or tag. Conditions may reference a term by its
// numeric id or by its slug, so both are carried.
type Term struct {
	ID       int64    `json:"id"`
	Taxonomy Taxonomy `json:"taxonomy"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	ParentID *int64   `json:"parent_id,omitempty"`
}
