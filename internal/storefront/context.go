// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storefront models the ambient state of one storefront request:
// what the visitor is looking at, who they are, and what their cart holds.
// The context is rebuilt per request and never stored.
package storefront

import (
	"shopwright/internal/models"
)

// Account endpoints a my-account page can be on. Dashboard is the bare
// /account URL.
const (
	EndpointDashboard      = "dashboard"
	EndpointOrders         = "orders"
	EndpointDownloads      = "downloads"
	EndpointEditAddress    = "edit-address"
	EndpointEditAccount    = "edit-account"
	EndpointPaymentMethods = "payment-methods"
	EndpointViewOrder      = "view-order"
)

// AccountEndpoints lists every account sub-page in navigation order.
var AccountEndpoints = []string{
	EndpointDashboard,
	EndpointOrders,
	EndpointDownloads,
	EndpointEditAddress,
	EndpointEditAccount,
	EndpointPaymentMethods,
	EndpointViewOrder,
}

// OrderReceivedEndpoint is the checkout endpoint reached after a
// completed order (the thank-you page).
const OrderReceivedEndpoint = "order-received"

// RequestContext carries everything condition evaluation and page-type
// resolution need about the current request. Zero value means "an
// unrelated page": no product, no archive, not a cart/checkout/account
// page, anonymous visitor.
type RequestContext struct {
	// Product is set when viewing a single product page.
	Product *models.Product

	// ArchiveTerm is set on a category or tag archive page.
	ArchiveTerm *models.Term

	// IsShop is true on the main product archive (the shop page).
	IsShop bool

	IsCartPage     bool
	IsCheckoutPage bool
	IsAccountPage  bool

	// CartItems is the current cart line count (0 for an empty cart).
	CartItems int

	// CheckoutEndpoint is the active checkout sub-endpoint, empty on the
	// main checkout form. OrderReceivedEndpoint marks the thank-you page.
	CheckoutEndpoint string

	// AccountEndpoint is the active account sub-page (EndpointDashboard
	// when on the bare account URL).
	AccountEndpoint string

	// LoggedIn and Roles describe the current visitor.
	LoggedIn bool
	Roles    []string
}

// IsProductArchive is true on the shop page or any taxonomy archive.
func (rc *RequestContext) IsProductArchive() bool {
	return rc.IsShop || rc.ArchiveTerm != nil
}

// IsOrderReceived is true on the post-checkout thank-you endpoint.
func (rc *RequestContext) IsOrderReceived() bool {
	return rc.IsCheckoutPage && rc.CheckoutEndpoint == OrderReceivedEndpoint
}

// ResolvePageType maps the context to exactly one page type, or "" when
// no storefront page applies. Precedence is fixed: single product wins
// over archive detection, the empty-cart split happens before cart, and
// order-received wins over plain checkout.
func (rc *RequestContext) ResolvePageType() models.PageType {
	switch {
	case rc.Product != nil:
		return models.PageTypeSingleProduct
	case rc.IsProductArchive():
		return models.PageTypeArchiveProduct
	case rc.IsCartPage && rc.CartItems == 0:
		return models.PageTypeEmptyCart
	case rc.IsCartPage:
		return models.PageTypeCart
	case rc.IsOrderReceived():
		return models.PageTypeThankYou
	case rc.IsCheckoutPage:
		return models.PageTypeCheckout
	case rc.IsAccountPage:
		return models.PageTypeMyAccount
	default:
		return ""
	}
}

// HasRole reports whether the visitor holds the given role.
func (rc *RequestContext) HasRole(role string) bool {
	for _, r := range rc.Roles {
		if r == role {
			return true
		}
	}
	return false
}
