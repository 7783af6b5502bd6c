// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shopwright/internal/cache"
	"shopwright/internal/metrics"
	"shopwright/internal/models"
	"shopwright/internal/storefront"
	"shopwright/internal/widgets"
)

// Renderer turns a selected template into page output: it builds the
// render plan, walks the stored widget tree, and emits the template's
// asset tags ahead of the content. Output for structural page types is
// cached by template id + page key.
type Renderer struct {
	registry    *widgets.Registry
	renderCache *cache.RenderCache // nil disables output caching
}

// NewRenderer creates a template renderer. renderCache may be nil.
func NewRenderer(registry *widgets.Registry, renderCache *cache.RenderCache) *Renderer {
	return &Renderer{registry: registry, renderCache: renderCache}
}

// Render produces the override HTML for a selected template and the plan
// the presentation layer consults for native-section suppression.
//
// Failures degrade, never propagate: an unparseable content blob renders
// as an empty slot (the my-account endpoint fallback in the plan still
// applies), and cache errors fall through to a fresh render.
func (r *Renderer) Render(ctx context.Context, tmpl *models.Template, pageType models.PageType, rc *storefront.RequestContext, data widgets.RenderData) ([]byte, *RenderPlan) {
	plan := PlanFor(tmpl, pageType, rc)

	var cacheKey string
	if plan.UseCache && r.renderCache != nil {
		cacheKey = cache.Key(tmpl.ID, pageKey(rc))
		if cached, ok := r.renderCache.Get(ctx, cacheKey); ok {
			metrics.CacheHits.WithLabelValues("rendered_page").Inc()
			return cached, plan
		}
		metrics.CacheMisses.WithLabelValues("rendered_page").Inc()
	}

	tree, err := ParseContent(tmpl.Content)
	if err != nil {
		slog.Warn("template content unparseable, rendering empty slot",
			"template", tmpl.ID, "error", err)
		return nil, plan
	}

	metrics.TemplateRenders.WithLabelValues(string(pageType)).Inc()

	var b strings.Builder
	b.WriteString(collectAssets(tree, r.registry, tmpl.ID).Tags())
	fmt.Fprintf(&b, `<div class="sw-template sw-layout-%s" data-template="%s">`, tmpl.Layout, tmpl.ID)
	r.renderElements(&b, tree, data)
	b.WriteString(`</div>`)

	out := []byte(b.String())
	if cacheKey != "" {
		r.renderCache.Set(ctx, cacheKey, out)
	}
	return out, plan
}

// renderElements walks the tree depth-first. Sections and columns become
// wrapper divs; widget leaves dispatch to the registry. Unknown widget
// types render nothing.
func (r *Renderer) renderElements(b *strings.Builder, els []Element, data widgets.RenderData) {
	for i := range els {
		el := &els[i]
		if el.IsWidget() {
			w := r.registry.Get(el.WidgetType)
			if w == nil {
				slog.Debug("unknown widget type skipped", "widget", el.WidgetType)
				continue
			}
			d := data
			d.Settings = el.Settings
			b.WriteString(w.Render(d))
			continue
		}

		switch el.ElType {
		case "section":
			b.WriteString(`<section class="sw-section">`)
			r.renderElements(b, el.Elements, data)
			b.WriteString(`</section>`)
		case "column":
			b.WriteString(`<div class="sw-column">`)
			r.renderElements(b, el.Elements, data)
			b.WriteString(`</div>`)
		default:
			// Unrecognized containers still render their children so a
			// newer builder format degrades instead of dropping content.
			r.renderElements(b, el.Elements, data)
		}
	}
}

// pageKey identifies the viewed entity for the rendered-output cache.
// Only called for cacheable page types, which are all product-scoped.
func pageKey(rc *storefront.RequestContext) string {
	switch {
	case rc.Product != nil:
		return fmt.Sprintf("product-%d", rc.Product.ID)
	case rc.ArchiveTerm != nil:
		return fmt.Sprintf("term-%d", rc.ArchiveTerm.ID)
	default:
		return "shop"
	}
}
