// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// Section names one native rendering slot of a storefront page. When a
// template overrides a page, its plan marks which native sections are
// suppressed so the theme's markup cannot leak through, and which keep
// rendering because widgets (or integrations) rely on them.
type Section string

const (
	// Generic wrappers present on every storefront page.
	SectionBeforeMain Section = "before-main-content"
	SectionAfterMain  Section = "after-main-content"
	SectionSidebar    Section = "sidebar"

	// Single product sections.
	SectionBeforeSingleProduct Section = "before-single-product"
	SectionAfterSingleProduct  Section = "after-single-product"
	SectionBeforeSummary       Section = "before-single-product-summary"
	SectionProductThumbnails   Section = "product-thumbnails"
	SectionProductSummary      Section = "single-product-summary"
	SectionAfterSummary        Section = "after-single-product-summary"

	// Archive sections.
	SectionArchiveDescription Section = "archive-description"
	SectionBeforeShopLoop     Section = "before-shop-loop"
	SectionShopLoopItem       Section = "shop-loop-item"
	SectionAfterShopLoop      Section = "after-shop-loop"
	SectionNoProductsFound    Section = "no-products-found"

	// Cart sections. Inner cart-table sections are deliberately absent:
	// cart widgets depend on them firing natively.
	SectionBeforeCart Section = "before-cart"
	SectionAfterCart  Section = "after-cart"

	// Account sections.
	SectionAccountNavigation Section = "account-navigation"
	SectionAccountDashboard  Section = "account-dashboard"
	SectionAccountContent    Section = "account-content"
	SectionAccountOrders     Section = "account-orders"
	SectionAccountDownloads  Section = "account-downloads"
	SectionAccountAddresses  Section = "account-edit-address"
	SectionAccountDetails    Section = "account-edit-account"
	SectionAccountPayment    Section = "account-payment-methods"
	SectionAccountViewOrder  Section = "account-view-order"
)

// SectionMode says whether a native section renders or is suppressed in
// favor of the template override.
type SectionMode int

const (
	SectionNative SectionMode = iota
	SectionSuppressed
)

// RenderPlan is the renderer's verdict for one request: which template
// renders, which native sections are silenced, and whether the rendered
// output may be cached by template id.
type RenderPlan struct {
	Template *models.Template
	Sections map[Section]SectionMode

	// UseCache is true only for structural page types; cart, checkout,
	// and account output depends on per-request state.
	UseCache bool
}

// Mode returns the plan's mode for a section, defaulting to native.
func (p *RenderPlan) Mode(s Section) SectionMode {
	if p == nil || p.Sections == nil {
		return SectionNative
	}
	return p.Sections[s]
}

// Suppressed is a convenience for Mode(s) == SectionSuppressed.
func (p *RenderPlan) Suppressed(s Section) bool {
	return p.Mode(s) == SectionSuppressed
}

// genericSuppressed are cleared for every overridden page type.
var genericSuppressed = []Section{SectionBeforeMain, SectionAfterMain, SectionSidebar}

// suppressedByType holds the page-type-specific sections an override
// silences. Checkout and thank-you pages clear nothing beyond the
// generic wrappers being absent too — their widgets render through the
// native flow so payment and shipping integrations keep firing.
var suppressedByType = map[models.PageType][]Section{
	models.PageTypeSingleProduct: {
		SectionBeforeSingleProduct,
		SectionAfterSingleProduct,
		SectionBeforeSummary,
		SectionProductThumbnails,
		SectionProductSummary,
		SectionAfterSummary,
	},
	models.PageTypeArchiveProduct: {
		SectionArchiveDescription,
		SectionBeforeShopLoop,
		SectionShopLoopItem,
		SectionAfterShopLoop,
		SectionNoProductsFound,
	},
	models.PageTypeCart: {
		SectionBeforeCart,
		SectionAfterCart,
	},
	models.PageTypeEmptyCart: {
		SectionBeforeCart,
		SectionAfterCart,
	},
	models.PageTypeMyAccount: {
		SectionAccountNavigation,
		SectionAccountDashboard,
		SectionAccountContent,
	},
}

// accountEndpointSections maps account endpoints to their native content
// section, suppressed individually unless the endpoint fallback applies.
var accountEndpointSections = map[string]Section{
	storefront.EndpointOrders:         SectionAccountOrders,
	storefront.EndpointDownloads:      SectionAccountDownloads,
	storefront.EndpointEditAddress:    SectionAccountAddresses,
	storefront.EndpointEditAccount:    SectionAccountDetails,
	storefront.EndpointPaymentMethods: SectionAccountPayment,
	storefront.EndpointViewOrder:      SectionAccountViewOrder,
}

// PlanFor builds the render plan for a template on a page type.
//
// For my-account, the template's content tree decides endpoint sections:
// when the tree has no widget covering the active endpoint, that
// endpoint's native section stays active as a fallback so the page is
// never blank.
func PlanFor(tmpl *models.Template, pageType models.PageType, rc *storefront.RequestContext) *RenderPlan {
	plan := &RenderPlan{
		Template: tmpl,
		Sections: make(map[Section]SectionMode),
		UseCache: pageType.Cacheable(),
	}

	// Checkout and thank-you overrides clear nothing.
	if pageType == models.PageTypeCheckout || pageType == models.PageTypeThankYou {
		return plan
	}

	for _, s := range genericSuppressed {
		plan.Sections[s] = SectionSuppressed
	}
	for _, s := range suppressedByType[pageType] {
		plan.Sections[s] = SectionSuppressed
	}

	if pageType == models.PageTypeMyAccount {
		tree, err := ParseContent(tmpl.Content)
		if err != nil {
			tree = nil
		}
		for endpoint, section := range accountEndpointSections {
			if endpoint == rc.AccountEndpoint && !treeCoversEndpoint(tree, endpoint) {
				// Native endpoint renderer stays on as fallback.
				plan.Sections[section] = SectionNative
				continue
			}
			plan.Sections[section] = SectionSuppressed
		}
	}

	return plan
}

// treeCoversEndpoint reports whether the content tree holds an
// account-content widget serving the endpoint (pinned to it, or
// unpinned and following the active endpoint).
func treeCoversEndpoint(tree []Element, endpoint string) bool {
	for _, el := range FindWidgets(tree, "account-content") {
		pinned, _ := el.Settings["endpoint"].(string)
		if pinned == "" || pinned == endpoint {
			return true
		}
	}
	return false
}
