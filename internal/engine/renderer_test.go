package engine

import (
	"context"
	"strings"
	"testing"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
	"shopwright/internal/widgets"
)

func testProduct() *models.Product {
	return &models.Product{
		ID:          42,
		Title:       "Walnut Desk",
		Slug:        "walnut-desk",
		Type:        models.ProductTypeSimple,
		Price:       14900,
		StockStatus: models.StockStatusInStock,
	}
}

func TestRenderSingleProduct(t *testing.T) {
	r := NewRenderer(widgets.NewRegistry(), nil)
	tmpl := testTemplate(models.PageTypeSingleProduct, `[
	  {"id":"s1","elType":"section","elements":[
	    {"id":"w1","elType":"widget","widgetType":"product-title"},
	    {"id":"w2","elType":"widget","widgetType":"product-price"}
	  ]}
	]`)
	tmpl.Layout = models.LayoutHeaderFooter

	rc := &storefront.RequestContext{Product: testProduct()}
	out, plan := r.Render(context.Background(), tmpl, models.PageTypeSingleProduct, rc, widgets.RenderData{Context: rc})

	html := string(out)
	if !strings.Contains(html, "Walnut Desk") {
		t.Error("product title missing from output")
	}
	if !strings.Contains(html, "149.00") {
		t.Error("formatted price missing from output")
	}
	if !strings.Contains(html, `sw-layout-header-footer`) {
		t.Error("layout class missing from wrapper")
	}
	if !strings.Contains(html, `data-template="`+tmpl.ID.String()+`"`) {
		t.Error("template id missing from wrapper")
	}
	if !strings.Contains(html, `<section class="sw-section">`) {
		t.Error("section wrapper missing")
	}
	if plan == nil || !plan.Suppressed(SectionProductSummary) {
		t.Error("plan should suppress the native product summary")
	}
}

func TestRenderEmitsAssetTags(t *testing.T) {
	r := NewRenderer(widgets.NewRegistry(), nil)
	tmpl := testTemplate(models.PageTypeSingleProduct,
		`[{"id":"w1","elType":"widget","widgetType":"product-grid"}]`)

	rc := &storefront.RequestContext{Product: testProduct()}
	out, _ := r.Render(context.Background(), tmpl, models.PageTypeSingleProduct, rc, widgets.RenderData{Context: rc})

	html := string(out)
	globalIdx := strings.Index(html, "/assets/css/sw-frontend.css")
	tmplIdx := strings.Index(html, "/assets/css/sw-template-"+tmpl.ID.String()+".css")
	if globalIdx < 0 || tmplIdx < 0 {
		t.Fatal("global and per-template stylesheets must both be emitted")
	}
	if globalIdx > tmplIdx {
		t.Error("global bundle must precede the template stylesheet")
	}
	if !strings.Contains(html, "/assets/css/sw-archive.css") {
		t.Error("widget style handle missing")
	}
	if !strings.Contains(html, "/assets/js/sw-add-to-cart.js") {
		t.Error("widget script handle missing")
	}
	contentIdx := strings.Index(html, `<div class="sw-template`)
	if tmplIdx > contentIdx {
		t.Error("asset tags must precede the content wrapper")
	}
}

func TestRenderUnknownWidgetSkipped(t *testing.T) {
	r := NewRenderer(widgets.NewRegistry(), nil)
	tmpl := testTemplate(models.PageTypeSingleProduct, `[
	  {"id":"w1","elType":"widget","widgetType":"carousel-3000"},
	  {"id":"w2","elType":"widget","widgetType":"product-title"}
	]`)

	rc := &storefront.RequestContext{Product: testProduct()}
	out, _ := r.Render(context.Background(), tmpl, models.PageTypeSingleProduct, rc, widgets.RenderData{Context: rc})

	if !strings.Contains(string(out), "Walnut Desk") {
		t.Error("known widget after an unknown one must still render")
	}
	if strings.Contains(string(out), "carousel-3000.css") {
		t.Error("unknown widget must contribute no assets")
	}
}

func TestRenderMalformedContent(t *testing.T) {
	r := NewRenderer(widgets.NewRegistry(), nil)
	tmpl := testTemplate(models.PageTypeCart, `{"broken":`)

	rc := &storefront.RequestContext{IsCartPage: true, CartItems: 1}
	out, plan := r.Render(context.Background(), tmpl, models.PageTypeCart, rc, widgets.RenderData{Context: rc})

	if out != nil {
		t.Errorf("malformed blob should render nothing, got %q", out)
	}
	if plan == nil || !plan.Suppressed(SectionBeforeCart) {
		t.Error("plan must still be returned so suppression holds")
	}
}

func TestPageKey(t *testing.T) {
	term := &models.Term{ID: 5, Taxonomy: models.TaxonomyCategory, Slug: "desks"}
	tests := []struct {
		name string
		rc   *storefront.RequestContext
		want string
	}{
		{"product page", &storefront.RequestContext{Product: testProduct()}, "product-42"},
		{"term archive", &storefront.RequestContext{ArchiveTerm: term}, "term-5"},
		{"shop root", &storefront.RequestContext{IsShop: true}, "shop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageKey(tt.rc); got != tt.want {
				t.Errorf("pageKey = %q, want %q", got, tt.want)
			}
		})
	}
}
