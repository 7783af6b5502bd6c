// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PageType identifies which storefront page a template can take over.
type PageType string

const (
	PageTypeSingleProduct  PageType = "single-product"
	PageTypeArchiveProduct PageType = "archive-product"
	PageTypeCart           PageType = "cart"
	PageTypeEmptyCart      PageType = "empty-cart"
	PageTypeCheckout       PageType = "checkout"
	PageTypeMyAccount      PageType = "my-account"
	PageTypeThankYou       PageType = "thankyou"
)

// PageTypes lists every valid page type in display order.
var PageTypes = []PageType{
	PageTypeSingleProduct,
	PageTypeArchiveProduct,
	PageTypeCart,
	PageTypeEmptyCart,
	PageTypeCheckout,
	PageTypeMyAccount,
	PageTypeThankYou,
}

// PageTypeLabels maps page types to human-readable names for the admin API.
var PageTypeLabels = map[PageType]string{
	PageTypeSingleProduct:  "Single Product",
	PageTypeArchiveProduct: "Product Archive",
	PageTypeCart:           "Cart",
	PageTypeEmptyCart:      "Empty Cart",
	PageTypeCheckout:       "Checkout",
	PageTypeMyAccount:      "My Account",
	PageTypeThankYou:       "Thank You",
}

// IsValid reports whether pt is one of the seven known page types.
func (pt PageType) IsValid() bool {
	_, ok := PageTypeLabels[pt]
	return ok
}

// Cacheable reports whether rendered output for this page type may be
// cached by template id. Cart, checkout, and account pages depend on
// per-request cart/user/endpoint state, so only the structural page
// types qualify.
func (pt PageType) Cacheable() bool {
	return pt == PageTypeSingleProduct || pt == PageTypeArchiveProduct
}

// Layout selects the outer page chrome a template renders inside.
type Layout string

const (
	LayoutCanvas       Layout = "canvas"
	LayoutHeaderFooter Layout = "header-footer"
)

// TemplateStatus represents the publishing state of a template.
// Only published templates participate in matching.
type TemplateStatus string

const (
	TemplateStatusDraft     TemplateStatus = "draft"
	TemplateStatusPublished TemplateStatus = "published"
)

// DefaultPriority is assigned to new templates. Higher priority wins
// during selection; specificity breaks ties.
const DefaultPriority = 10

// Template is a stored visual layout for one storefront page type,
// together with the conditions that decide where it applies. The content
// blob is an opaque JSON widget tree authored by the builder UI.
type Template struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Type       PageType       `json:"type"`
	Layout     Layout         `json:"layout"`
	Status     TemplateStatus `json:"status"`
	Priority   int            `json:"priority"`
	Conditions []Condition    `json:"conditions"`
	Content    []byte         `json:"content"` // JSON widget tree, opaque here
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// IsPublished returns true if the template is in published status.
func (t *Template) IsPublished() bool {
	return t.Status == TemplateStatusPublished
}
