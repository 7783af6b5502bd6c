// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package widgets provides the storefront widget registry. Each widget
// type declares the style/script handles it depends on and knows how to
// render itself against the current request context. The template
// renderer walks a stored widget tree and dispatches here.
package widgets

import (
	"sort"

	"shopwright/internal/cart"
	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// RenderData is everything a widget render call can draw on.
type RenderData struct {
	// Context is the ambient storefront state for this request.
	Context *storefront.RequestContext

	// Settings is the widget's own settings object from the content blob.
	Settings map[string]any

	// Cart holds the resolved cart lines for cart/checkout widgets.
	// Nil outside those pages.
	Cart *cart.Cart

	// Products is the archive listing for product-grid widgets.
	Products []models.Product

	// ShopName is the configured store display name.
	ShopName string
}

// Widget is one renderable widget type.
type Widget interface {
	// Type returns the widget-type token stored in content blobs.
	Type() string

	// StyleDeps and ScriptDeps return asset handles this widget needs.
	// Handles resolve to /assets/css/<handle>.css and /assets/js/<handle>.js.
	StyleDeps() []string
	ScriptDeps() []string

	// Render returns the widget's HTML. Widgets rendered outside their
	// expected context return an empty string rather than failing.
	Render(d RenderData) string
}

// Registry maps widget-type tokens to their implementations. It is
// populated once at startup and read-only afterwards, so no locking.
type Registry struct {
	widgets map[string]Widget
}

// NewRegistry returns a registry preloaded with every builtin widget.
func NewRegistry() *Registry {
	r := &Registry{widgets: make(map[string]Widget)}
	for _, w := range builtins() {
		r.Register(w)
	}
	return r
}

// Register adds a widget. A later registration for the same type wins,
// which lets a deployment override a builtin.
func (r *Registry) Register(w Widget) {
	r.widgets[w.Type()] = w
}

// Get returns the widget for a type token, or nil if unknown.
func (r *Registry) Get(widgetType string) Widget {
	return r.widgets[widgetType]
}

// Types returns all registered widget types, sorted for stable output.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.widgets))
	for t := range r.widgets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Handles returns the style and script handles declared by a widget
// type. Unknown types yield nothing — their assets are simply absent,
// never an error.
func (r *Registry) Handles(widgetType string) (styles, scripts []string) {
	w := r.widgets[widgetType]
	if w == nil {
		return nil, nil
	}
	return w.StyleDeps(), w.ScriptDeps()
}
