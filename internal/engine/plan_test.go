package engine

import (
	"testing"

	"github.com/google/uuid"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

func testTemplate(pt models.PageType, content string) *models.Template {
	return &models.Template{
		ID:      uuid.New(),
		Title:   "test",
		Type:    pt,
		Status:  models.TemplateStatusPublished,
		Content: []byte(content),
	}
}

func TestPlanGenericSuppression(t *testing.T) {
	// Every overridden page type except checkout/thankyou clears the
	// generic wrappers and the sidebar.
	for _, pt := range []models.PageType{
		models.PageTypeSingleProduct,
		models.PageTypeArchiveProduct,
		models.PageTypeCart,
		models.PageTypeEmptyCart,
		models.PageTypeMyAccount,
	} {
		t.Run(string(pt), func(t *testing.T) {
			plan := PlanFor(testTemplate(pt, "[]"), pt, &storefront.RequestContext{})
			for _, s := range []Section{SectionBeforeMain, SectionAfterMain, SectionSidebar} {
				if !plan.Suppressed(s) {
					t.Errorf("%s: section %s should be suppressed", pt, s)
				}
			}
		})
	}
}

func TestPlanSingleProductSections(t *testing.T) {
	plan := PlanFor(testTemplate(models.PageTypeSingleProduct, "[]"),
		models.PageTypeSingleProduct, &storefront.RequestContext{})

	suppressed := []Section{
		SectionBeforeSingleProduct, SectionAfterSingleProduct,
		SectionBeforeSummary, SectionProductThumbnails,
		SectionProductSummary, SectionAfterSummary,
	}
	for _, s := range suppressed {
		if !plan.Suppressed(s) {
			t.Errorf("section %s should be suppressed on single-product", s)
		}
	}
	// Cart wrappers belong to a different page type; untouched here.
	if plan.Suppressed(SectionBeforeCart) {
		t.Error("cart sections must not be suppressed on single-product")
	}
}

func TestPlanCartKeepsInnerSections(t *testing.T) {
	plan := PlanFor(testTemplate(models.PageTypeCart, "[]"),
		models.PageTypeCart, &storefront.RequestContext{IsCartPage: true, CartItems: 1})

	if !plan.Suppressed(SectionBeforeCart) || !plan.Suppressed(SectionAfterCart) {
		t.Error("outer cart wrappers should be suppressed")
	}
	// Only the outer wrappers are in the plan; archive and product
	// sections must stay native.
	if plan.Suppressed(SectionShopLoopItem) || plan.Suppressed(SectionProductSummary) {
		t.Error("non-cart sections must stay native on the cart page")
	}
}

// TestPlanCheckoutClearsNothing pins the rule that checkout and thankyou
// overrides leave every native section firing so payment and shipping
// integrations keep working.
func TestPlanCheckoutClearsNothing(t *testing.T) {
	for _, pt := range []models.PageType{models.PageTypeCheckout, models.PageTypeThankYou} {
		t.Run(string(pt), func(t *testing.T) {
			plan := PlanFor(testTemplate(pt, "[]"), pt, &storefront.RequestContext{IsCheckoutPage: true})
			if len(plan.Sections) != 0 {
				t.Errorf("%s plan suppresses %d sections, want 0", pt, len(plan.Sections))
			}
			if plan.Suppressed(SectionBeforeMain) {
				t.Error("generic wrappers must stay native on checkout")
			}
		})
	}
}

func TestPlanUseCacheFlag(t *testing.T) {
	tests := []struct {
		pt   models.PageType
		want bool
	}{
		{models.PageTypeSingleProduct, true},
		{models.PageTypeArchiveProduct, true},
		{models.PageTypeCart, false},
		{models.PageTypeEmptyCart, false},
		{models.PageTypeCheckout, false},
		{models.PageTypeMyAccount, false},
		{models.PageTypeThankYou, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.pt), func(t *testing.T) {
			plan := PlanFor(testTemplate(tt.pt, "[]"), tt.pt, &storefront.RequestContext{})
			if plan.UseCache != tt.want {
				t.Errorf("%s UseCache = %v, want %v", tt.pt, plan.UseCache, tt.want)
			}
		})
	}
}

func TestPlanAccountEndpointFallback(t *testing.T) {
	rc := &storefront.RequestContext{
		IsAccountPage:   true,
		AccountEndpoint: storefront.EndpointOrders,
	}

	t.Run("template without endpoint widget keeps native section", func(t *testing.T) {
		tmpl := testTemplate(models.PageTypeMyAccount,
			`[{"id":"a","elType":"widget","widgetType":"account-nav"}]`)
		plan := PlanFor(tmpl, models.PageTypeMyAccount, rc)

		if plan.Suppressed(SectionAccountOrders) {
			t.Error("orders section must stay native as fallback")
		}
		// Inactive endpoints are still suppressed.
		if !plan.Suppressed(SectionAccountDownloads) {
			t.Error("inactive endpoint sections should be suppressed")
		}
		if !plan.Suppressed(SectionAccountNavigation) {
			t.Error("navigation should be suppressed by the template")
		}
	})

	t.Run("unpinned account-content widget covers every endpoint", func(t *testing.T) {
		tmpl := testTemplate(models.PageTypeMyAccount,
			`[{"id":"a","elType":"widget","widgetType":"account-content"}]`)
		plan := PlanFor(tmpl, models.PageTypeMyAccount, rc)

		if !plan.Suppressed(SectionAccountOrders) {
			t.Error("orders section should be suppressed when the widget covers it")
		}
	})

	t.Run("widget pinned to another endpoint does not cover orders", func(t *testing.T) {
		tmpl := testTemplate(models.PageTypeMyAccount,
			`[{"id":"a","elType":"widget","widgetType":"account-content","settings":{"endpoint":"downloads"}}]`)
		plan := PlanFor(tmpl, models.PageTypeMyAccount, rc)

		if plan.Suppressed(SectionAccountOrders) {
			t.Error("orders section must stay native; widget is pinned to downloads")
		}
	})
}

func TestNilPlanDefaultsToNative(t *testing.T) {
	var plan *RenderPlan
	if plan.Suppressed(SectionBeforeMain) {
		t.Error("nil plan must report every section native")
	}
}
