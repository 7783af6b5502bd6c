// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func salePrice(v int64) *int64 { return &v }

func TestProductOnSale(t *testing.T) {
	tests := []struct {
		name string
		p    Product
		want bool
	}{
		{"no sale price", Product{Price: 10000}, false},
		{"sale below regular", Product{Price: 10000, SalePrice: salePrice(8000)}, true},
		{"sale equals regular", Product{Price: 10000, SalePrice: salePrice(10000)}, false},
		{"sale above regular", Product{Price: 10000, SalePrice: salePrice(12000)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.OnSale(); got != tt.want {
				t.Errorf("OnSale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductInStock(t *testing.T) {
	p := Product{StockStatus: StockStatusInStock}
	if !p.InStock() {
		t.Error("instock product should be purchasable")
	}
	p.StockStatus = StockStatusOutOfStock
	if p.InStock() {
		t.Error("outofstock product should not be purchasable")
	}
}

func TestProductTermsFor(t *testing.T) {
	p := Product{Terms: []Term{
		{ID: 1, Taxonomy: TaxonomyCategory, Slug: "desks"},
		{ID: 2, Taxonomy: TaxonomyTag, Slug: "handmade"},
		{ID: 3, Taxonomy: TaxonomyCategory, Slug: "office"},
	}}

	cats := p.TermsFor(TaxonomyCategory)
	if len(cats) != 2 || cats[0].Slug != "desks" || cats[1].Slug != "office" {
		t.Errorf("categories = %+v", cats)
	}

	tags := p.TermsFor(TaxonomyTag)
	if len(tags) != 1 || tags[0].Slug != "handmade" {
		t.Errorf("tags = %+v", tags)
	}

	if got := (&Product{}).TermsFor(TaxonomyCategory); got != nil {
		t.Errorf("product without terms should return nil, got %+v", got)
	}
}
