// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package widgets

import (
	"fmt"
	"html"
	"strings"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// builtins returns every widget type shipped with the builder.
func builtins() []Widget {
	return []Widget{
		&headingWidget{},
		&textWidget{},
		&productTitleWidget{},
		&productPriceWidget{},
		&productImageWidget{},
		&addToCartWidget{},
		&productMetaWidget{},
		&productGridWidget{},
		&cartTableWidget{},
		&cartTotalsWidget{},
		&couponFormWidget{},
		&checkoutFormWidget{},
		&orderDetailsWidget{},
		&accountNavWidget{},
		&accountContentWidget{},
	}
}

// setting reads a string setting with a fallback.
func setting(s map[string]any, key, fallback string) string {
	if v, ok := s[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// money formats minor units as a display price.
func money(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

// ---------------------------------------------------------------------------
// Generic widgets
// ---------------------------------------------------------------------------

type headingWidget struct{}

func (*headingWidget) Type() string         { return "heading" }
func (*headingWidget) StyleDeps() []string  { return []string{"sw-base"} }
func (*headingWidget) ScriptDeps() []string { return nil }

func (*headingWidget) Render(d RenderData) string {
	level := setting(d.Settings, "level", "h2")
	if level != "h1" && level != "h2" && level != "h3" && level != "h4" {
		level = "h2"
	}
	title := setting(d.Settings, "title", "")
	return fmt.Sprintf(`<%s class="sw-heading">%s</%s>`, level, html.EscapeString(title), level)
}

type textWidget struct{}

func (*textWidget) Type() string         { return "text" }
func (*textWidget) StyleDeps() []string  { return []string{"sw-base"} }
func (*textWidget) ScriptDeps() []string { return nil }

func (*textWidget) Render(d RenderData) string {
	return fmt.Sprintf(`<div class="sw-text"><p>%s</p></div>`,
		html.EscapeString(setting(d.Settings, "text", "")))
}

// ---------------------------------------------------------------------------
// Single-product widgets — empty output outside a product context.
// ---------------------------------------------------------------------------

type productTitleWidget struct{}

func (*productTitleWidget) Type() string         { return "product-title" }
func (*productTitleWidget) StyleDeps() []string  { return []string{"sw-product"} }
func (*productTitleWidget) ScriptDeps() []string { return nil }

func (*productTitleWidget) Render(d RenderData) string {
	if d.Context.Product == nil {
		return ""
	}
	return fmt.Sprintf(`<h1 class="sw-product-title">%s</h1>`,
		html.EscapeString(d.Context.Product.Title))
}

type productPriceWidget struct{}

func (*productPriceWidget) Type() string         { return "product-price" }
func (*productPriceWidget) StyleDeps() []string  { return []string{"sw-product"} }
func (*productPriceWidget) ScriptDeps() []string { return nil }

func (*productPriceWidget) Render(d RenderData) string {
	p := d.Context.Product
	if p == nil {
		return ""
	}
	if p.OnSale() {
		return fmt.Sprintf(`<p class="sw-product-price"><del>%s</del> <ins>%s</ins></p>`,
			money(p.Price), money(*p.SalePrice))
	}
	return fmt.Sprintf(`<p class="sw-product-price">%s</p>`, money(p.Price))
}

type productImageWidget struct{}

func (*productImageWidget) Type() string         { return "product-image" }
func (*productImageWidget) StyleDeps() []string  { return []string{"sw-product"} }
func (*productImageWidget) ScriptDeps() []string { return []string{"sw-gallery"} }

func (*productImageWidget) Render(d RenderData) string {
	p := d.Context.Product
	if p == nil {
		return ""
	}
	return fmt.Sprintf(`<figure class="sw-product-image"><img src="/media/products/%s.webp" alt="%s"></figure>`,
		html.EscapeString(p.Slug), html.EscapeString(p.Title))
}

type addToCartWidget struct{}

func (*addToCartWidget) Type() string         { return "product-add-to-cart" }
func (*addToCartWidget) StyleDeps() []string  { return []string{"sw-product"} }
func (*addToCartWidget) ScriptDeps() []string { return []string{"sw-add-to-cart"} }

func (*addToCartWidget) Render(d RenderData) string {
	p := d.Context.Product
	if p == nil {
		return ""
	}
	if !p.InStock() {
		return `<p class="sw-out-of-stock">Out of stock</p>`
	}
	return fmt.Sprintf(`<form class="sw-add-to-cart" method="post" action="/cart/add">`+
		`<input type="hidden" name="product_id" value="%d">`+
		`<input type="number" name="quantity" value="1" min="1">`+
		`<button type="submit">%s</button></form>`,
		p.ID, html.EscapeString(setting(d.Settings, "button_text", "Add to cart")))
}

type productMetaWidget struct{}

func (*productMetaWidget) Type() string         { return "product-meta" }
func (*productMetaWidget) StyleDeps() []string  { return []string{"sw-product"} }
func (*productMetaWidget) ScriptDeps() []string { return nil }

func (*productMetaWidget) Render(d RenderData) string {
	p := d.Context.Product
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="sw-product-meta">`)
	writeTermList(&b, "Categories", p.TermsFor(models.TaxonomyCategory), "/product-category/")
	writeTermList(&b, "Tags", p.TermsFor(models.TaxonomyTag), "/product-tag/")
	b.WriteString(`</div>`)
	return b.String()
}

func writeTermList(b *strings.Builder, label string, terms []models.Term, base string) {
	if len(terms) == 0 {
		return
	}
	b.WriteString(`<span class="sw-meta-row">` + label + `: `)
	for i, t := range terms {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, `<a href="%s%s">%s</a>`, base, html.EscapeString(t.Slug), html.EscapeString(t.Name))
	}
	b.WriteString(`</span>`)
}

// ---------------------------------------------------------------------------
// Archive widget
// ---------------------------------------------------------------------------

type productGridWidget struct{}

func (*productGridWidget) Type() string         { return "product-grid" }
func (*productGridWidget) StyleDeps() []string  { return []string{"sw-archive"} }
func (*productGridWidget) ScriptDeps() []string { return []string{"sw-add-to-cart"} }

func (*productGridWidget) Render(d RenderData) string {
	var b strings.Builder
	b.WriteString(`<ul class="sw-product-grid">`)
	for _, p := range d.Products {
		fmt.Fprintf(&b, `<li class="sw-grid-item"><a href="/product/%s">%s</a><span class="sw-grid-price">%s</span></li>`,
			html.EscapeString(p.Slug), html.EscapeString(p.Title), money(p.Price))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// ---------------------------------------------------------------------------
// Cart widgets — empty output without a resolved cart.
// ---------------------------------------------------------------------------

type cartTableWidget struct{}

func (*cartTableWidget) Type() string         { return "cart-table" }
func (*cartTableWidget) StyleDeps() []string  { return []string{"sw-cart"} }
func (*cartTableWidget) ScriptDeps() []string { return []string{"sw-cart"} }

func (*cartTableWidget) Render(d RenderData) string {
	if d.Cart == nil {
		return ""
	}
	if d.Cart.IsEmpty() {
		return `<p class="sw-cart-empty">Your cart is currently empty.</p>`
	}
	var b strings.Builder
	b.WriteString(`<table class="sw-cart-table"><tbody>`)
	for _, l := range d.Cart.Lines {
		fmt.Fprintf(&b, `<tr data-product="%d"><td>%s</td><td>%s</td>`+
			`<td><input type="number" name="quantity" value="%d" min="0"></td><td>%s</td></tr>`,
			l.ProductID, html.EscapeString(l.Title), money(l.Price), l.Quantity,
			money(l.Price*int64(l.Quantity)))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

type cartTotalsWidget struct{}

func (*cartTotalsWidget) Type() string         { return "cart-totals" }
func (*cartTotalsWidget) StyleDeps() []string  { return []string{"sw-cart"} }
func (*cartTotalsWidget) ScriptDeps() []string { return []string{"sw-cart"} }

func (*cartTotalsWidget) Render(d RenderData) string {
	if d.Cart == nil || d.Cart.IsEmpty() {
		return ""
	}
	return fmt.Sprintf(`<div class="sw-cart-totals"><span>Subtotal</span><span>%s</span>`+
		`<a class="sw-checkout-button" href="/checkout">Proceed to checkout</a></div>`,
		money(d.Cart.Subtotal()))
}

type couponFormWidget struct{}

func (*couponFormWidget) Type() string         { return "coupon-form" }
func (*couponFormWidget) StyleDeps() []string  { return []string{"sw-cart"} }
func (*couponFormWidget) ScriptDeps() []string { return []string{"sw-coupon"} }

func (*couponFormWidget) Render(d RenderData) string {
	if d.Cart == nil {
		return ""
	}
	return `<form class="sw-coupon-form" method="post" action="/cart/coupon">` +
		`<input type="text" name="coupon" placeholder="Coupon code">` +
		`<button type="submit">Apply</button></form>`
}

// ---------------------------------------------------------------------------
// Checkout / thank-you widgets
// ---------------------------------------------------------------------------

type checkoutFormWidget struct{}

func (*checkoutFormWidget) Type() string         { return "checkout-form" }
func (*checkoutFormWidget) StyleDeps() []string  { return []string{"sw-checkout"} }
func (*checkoutFormWidget) ScriptDeps() []string { return []string{"sw-checkout"} }

func (*checkoutFormWidget) Render(d RenderData) string {
	if d.Context == nil || !d.Context.IsCheckoutPage {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<form class="sw-checkout-form" method="post" action="/checkout">`)
	b.WriteString(`<fieldset class="sw-billing"><legend>Billing details</legend>`)
	b.WriteString(`<input type="text" name="name" placeholder="Full name" required>`)
	b.WriteString(`<input type="email" name="email" placeholder="Email" required>`)
	b.WriteString(`<input type="text" name="address" placeholder="Address" required>`)
	b.WriteString(`</fieldset>`)
	if d.Cart != nil && !d.Cart.IsEmpty() {
		fmt.Fprintf(&b, `<div class="sw-order-review"><span>Order total</span><span>%s</span></div>`,
			money(d.Cart.Subtotal()))
	}
	b.WriteString(`<button type="submit">Place order</button></form>`)
	return b.String()
}

type orderDetailsWidget struct{}

func (*orderDetailsWidget) Type() string         { return "order-details" }
func (*orderDetailsWidget) StyleDeps() []string  { return []string{"sw-checkout"} }
func (*orderDetailsWidget) ScriptDeps() []string { return nil }

func (*orderDetailsWidget) Render(d RenderData) string {
	if d.Context == nil || !d.Context.IsOrderReceived() {
		return ""
	}
	return `<div class="sw-order-details"><p class="sw-order-thanks">Thank you. Your order has been received.</p></div>`
}

// ---------------------------------------------------------------------------
// Account widgets
// ---------------------------------------------------------------------------

type accountNavWidget struct{}

func (*accountNavWidget) Type() string         { return "account-nav" }
func (*accountNavWidget) StyleDeps() []string  { return []string{"sw-account"} }
func (*accountNavWidget) ScriptDeps() []string { return nil }

func (*accountNavWidget) Render(d RenderData) string {
	if d.Context == nil || !d.Context.IsAccountPage {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav class="sw-account-nav"><ul>`)
	for _, ep := range storefront.AccountEndpoints {
		if ep == storefront.EndpointViewOrder {
			continue // only reachable from the orders list
		}
		class := ""
		if ep == d.Context.AccountEndpoint {
			class = ` class="is-active"`
		}
		href := "/account"
		if ep != storefront.EndpointDashboard {
			href += "/" + ep
		}
		fmt.Fprintf(&b, `<li%s><a href="%s">%s</a></li>`, class, href, endpointLabel(ep))
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

// accountContentWidget renders one account endpoint's content. An
// "endpoint" setting pins it to a specific sub-page; without one it
// follows whatever endpoint is active.
type accountContentWidget struct{}

func (*accountContentWidget) Type() string         { return "account-content" }
func (*accountContentWidget) StyleDeps() []string  { return []string{"sw-account"} }
func (*accountContentWidget) ScriptDeps() []string { return []string{"sw-account"} }

// ServesEndpoint reports whether a widget instance with the given
// settings covers the endpoint. Used by the renderer's account fallback.
func (*accountContentWidget) ServesEndpoint(settings map[string]any, endpoint string) bool {
	pinned := setting(settings, "endpoint", "")
	return pinned == "" || pinned == endpoint
}

func (w *accountContentWidget) Render(d RenderData) string {
	if d.Context == nil || !d.Context.IsAccountPage {
		return ""
	}
	endpoint := d.Context.AccountEndpoint
	if pinned := setting(d.Settings, "endpoint", ""); pinned != "" {
		if pinned != endpoint {
			return ""
		}
		endpoint = pinned
	}
	return fmt.Sprintf(`<section class="sw-account-content" data-endpoint="%s"><h2>%s</h2></section>`,
		html.EscapeString(endpoint), endpointLabel(endpoint))
}

// endpointLabel maps account endpoints to display names.
func endpointLabel(ep string) string {
	switch ep {
	case storefront.EndpointDashboard:
		return "Dashboard"
	case storefront.EndpointOrders:
		return "Orders"
	case storefront.EndpointDownloads:
		return "Downloads"
	case storefront.EndpointEditAddress:
		return "Addresses"
	case storefront.EndpointEditAccount:
		return "Account details"
	case storefront.EndpointPaymentMethods:
		return "Payment methods"
	case storefront.EndpointViewOrder:
		return "Order"
	default:
		return ep
	}
}
