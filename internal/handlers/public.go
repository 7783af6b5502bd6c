// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"shopwright/internal/cart"
	"shopwright/internal/engine"
	"shopwright/internal/middleware"
	"shopwright/internal/models"
	"shopwright/internal/session"
	"shopwright/internal/store"
	"shopwright/internal/storefront"
	"shopwright/internal/widgets"
)

// Public groups handlers for the storefront. Every page handler builds
// the request context, asks the template manager whether a builder
// template takes over, and falls back to the native rendering when none
// matches (or the builder is disabled).
type Public struct {
	manager  *engine.Manager
	renderer *engine.Renderer
	products *store.ProductStore
	terms    *store.TermStore
	settings *store.SiteSettingStore
	carts    *cart.Store
}

// NewPublic creates a new Public handler group.
func NewPublic(manager *engine.Manager, renderer *engine.Renderer, products *store.ProductStore, terms *store.TermStore, settings *store.SiteSettingStore, carts *cart.Store) *Public {
	return &Public{
		manager:  manager,
		renderer: renderer,
		products: products,
		terms:    terms,
		settings: settings,
		carts:    carts,
	}
}

// baseContext fills the visitor-level fields every storefront request
// shares: identity, roles, and the current cart size.
func (p *Public) baseContext(w http.ResponseWriter, r *http.Request) (*storefront.RequestContext, *cart.Cart) {
	c := p.carts.Get(r.Context(), session.ShopperID(w, r))

	rc := &storefront.RequestContext{CartItems: len(c.Lines)}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		rc.LoggedIn = true
		rc.Roles = []string{sess.Role}
	}
	return rc, c
}

// Shop renders the main product archive.
func (p *Public) Shop(w http.ResponseWriter, r *http.Request) {
	rc, c := p.baseContext(w, r)
	rc.IsShop = true

	products, err := p.products.List()
	if err != nil {
		slog.Error("list products failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.serve(w, r, rc, c, products, "Shop")
}

// CategoryArchive renders a product category archive by slug.
func (p *Public) CategoryArchive(w http.ResponseWriter, r *http.Request) {
	p.termArchive(w, r, models.TaxonomyCategory)
}

// TagArchive renders a product tag archive by slug.
func (p *Public) TagArchive(w http.ResponseWriter, r *http.Request) {
	p.termArchive(w, r, models.TaxonomyTag)
}

func (p *Public) termArchive(w http.ResponseWriter, r *http.Request, tax models.Taxonomy) {
	slugParam := chi.URLParam(r, "slug")

	term, err := p.terms.FindBySlug(tax, slugParam)
	if err != nil {
		slog.Error("find term failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if term == nil {
		http.NotFound(w, r)
		return
	}

	products, err := p.products.ListByTerm(term.ID)
	if err != nil {
		slog.Error("list products by term failed", "error", err, "term", term.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rc, c := p.baseContext(w, r)
	rc.ArchiveTerm = term
	p.serve(w, r, rc, c, products, term.Name)
}

// Product renders a single product page by slug.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	product, err := p.products.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find product failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	rc, c := p.baseContext(w, r)
	rc.Product = product
	p.serve(w, r, rc, c, nil, product.Title)
}

// CartPage renders the cart (or empty-cart) page.
func (p *Public) CartPage(w http.ResponseWriter, r *http.Request) {
	rc, c := p.baseContext(w, r)
	rc.IsCartPage = true
	p.serve(w, r, rc, c, nil, "Cart")
}

// CartAdd handles the add-to-cart form post.
func (p *Public) CartAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || qty < 1 {
		qty = 1
	}

	product, err := p.products.FindByID(productID)
	if err != nil {
		slog.Error("cart add lookup failed", "error", err, "product", productID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if product == nil || !product.InStock() {
		http.Error(w, "Product unavailable", http.StatusConflict)
		return
	}

	price := product.Price
	if product.OnSale() {
		price = *product.SalePrice
	}

	if _, err := p.carts.AddLine(r.Context(), session.ShopperID(w, r), cart.Line{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     price,
		Quantity:  qty,
	}); err != nil {
		slog.Error("cart add failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartUpdate changes one line's quantity. Zero removes the line.
func (p *Public) CartUpdate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || qty < 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := p.carts.SetQuantity(r.Context(), session.ShopperID(w, r), productID, qty); err != nil {
		slog.Error("cart update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartCoupon records a coupon code on the cart.
func (p *Public) CartCoupon(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.FormValue("coupon"))
	if _, err := p.carts.ApplyCoupon(r.Context(), session.ShopperID(w, r), code); err != nil {
		slog.Error("apply coupon failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CheckoutPage renders the checkout form.
func (p *Public) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	rc, c := p.baseContext(w, r)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	rc.IsCheckoutPage = true
	p.serve(w, r, rc, c, nil, "Checkout")
}

// CheckoutSubmit accepts the order, clears the cart, and redirects to
// the thank-you page. Payment capture is out of scope for the demo
// checkout; orders are acknowledged, not persisted.
func (p *Public) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	shopperID := session.ShopperID(w, r)
	c := p.carts.Get(r.Context(), shopperID)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if strings.TrimSpace(r.FormValue("email")) == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err := p.carts.Clear(r.Context(), shopperID); err != nil {
		slog.Warn("cart clear after checkout failed", "error", err)
	}

	orderRef := shopperID
	if len(orderRef) > 8 {
		orderRef = orderRef[:8]
	}
	http.Redirect(w, r, "/checkout/order-received/"+orderRef, http.StatusSeeOther)
}

// OrderReceived renders the post-checkout thank-you page.
func (p *Public) OrderReceived(w http.ResponseWriter, r *http.Request) {
	rc, c := p.baseContext(w, r)
	rc.IsCheckoutPage = true
	rc.CheckoutEndpoint = storefront.OrderReceivedEndpoint
	p.serve(w, r, rc, c, nil, "Order received")
}

// Account renders the my-account page, optionally on a sub-endpoint.
func (p *Public) Account(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")
	if endpoint == "" {
		endpoint = storefront.EndpointDashboard
	}

	valid := false
	for _, ep := range storefront.AccountEndpoints {
		if ep == endpoint {
			valid = true
			break
		}
	}
	if !valid {
		http.NotFound(w, r)
		return
	}

	rc, c := p.baseContext(w, r)
	rc.IsAccountPage = true
	rc.AccountEndpoint = endpoint
	p.serve(w, r, rc, c, nil, "My account")
}

// serve resolves and renders the page: builder template when one
// matches, native markup otherwise.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, rc *storefront.RequestContext, c *cart.Cart, products []models.Product, title string) {
	shopName, err := p.settings.Get(models.SettingShopName, "Shopwright")
	if err != nil {
		shopName = "Shopwright"
	}

	data := widgets.RenderData{
		Context:  rc,
		Cart:     c,
		Products: products,
		ShopName: shopName,
	}

	tmpl, pageType := p.manager.TemplateForRequest(r.Context(), rc)
	if tmpl == nil {
		p.nativePage(w, rc, data, title, shopName)
		return
	}

	out, plan := p.renderer.Render(r.Context(), tmpl, pageType, rc, data)
	writeShell(w, title, shopName, string(out), plan, data)
}

// nativePage is the storefront's own rendering, used when no template
// overrides the page. It reuses the widget implementations so native
// and templated output stay consistent.
func (p *Public) nativePage(w http.ResponseWriter, rc *storefront.RequestContext, data widgets.RenderData, title, shopName string) {
	var b strings.Builder

	switch {
	case rc.Product != nil:
		b.WriteString(nativeWidget("product-image", data))
		b.WriteString(nativeWidget("product-title", data))
		b.WriteString(nativeWidget("product-price", data))
		b.WriteString(nativeWidget("product-add-to-cart", data))
		b.WriteString(nativeWidget("product-meta", data))
	case rc.IsProductArchive():
		fmt.Fprintf(&b, `<h1 class="sw-archive-title">%s</h1>`, html.EscapeString(title))
		b.WriteString(nativeWidget("product-grid", data))
	case rc.IsCartPage:
		b.WriteString(nativeWidget("cart-table", data))
		b.WriteString(nativeWidget("coupon-form", data))
		b.WriteString(nativeWidget("cart-totals", data))
	case rc.IsOrderReceived():
		b.WriteString(nativeWidget("order-details", data))
	case rc.IsCheckoutPage:
		b.WriteString(nativeWidget("checkout-form", data))
	case rc.IsAccountPage:
		b.WriteString(nativeWidget("account-nav", data))
		b.WriteString(nativeWidget("account-content", data))
	}

	writeShell(w, title, shopName, b.String(), nil, data)
}

// writeShell wraps rendered content in the storefront page frame. The
// render plan controls which native sections surround the content; a
// nil plan keeps them all.
func writeShell(w http.ResponseWriter, title, shopName, content string, plan *engine.RenderPlan, data widgets.RenderData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html><html><head><title>%s — %s</title>`,
		html.EscapeString(title), html.EscapeString(shopName))
	b.WriteString(`<link rel="stylesheet" href="/assets/css/sw-frontend.css"></head><body>`)
	fmt.Fprintf(&b, `<header class="sw-header"><a href="/shop">%s</a>`, html.EscapeString(shopName))
	fmt.Fprintf(&b, `<a class="sw-header-cart" href="/cart">Cart (%d)</a></header>`, data.Context.CartItems)

	if !plan.Suppressed(engine.SectionBeforeMain) {
		b.WriteString(`<div class="sw-content-wrap">`)
	}
	b.WriteString(`<main class="sw-main">`)
	b.WriteString(content)
	b.WriteString(`</main>`)
	if !plan.Suppressed(engine.SectionSidebar) {
		b.WriteString(`<aside class="sw-sidebar"></aside>`)
	}
	if !plan.Suppressed(engine.SectionAfterMain) {
		b.WriteString(`</div>`)
	}

	b.WriteString(`<footer class="sw-footer"></footer></body></html>`)
	w.Write([]byte(b.String()))
}

// nativeWidget renders one builtin widget outside a template context.
var nativeRegistry = widgets.NewRegistry()

func nativeWidget(widgetType string, data widgets.RenderData) string {
	wdg := nativeRegistry.Get(widgetType)
	if wdg == nil {
		return ""
	}
	return wdg.Render(data)
}
