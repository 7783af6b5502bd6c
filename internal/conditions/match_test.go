package conditions

import (
	"testing"

	"github.com/google/uuid"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

func productInCategory(id int64, catID int64) *storefront.RequestContext {
	return &storefront.RequestContext{
		Product: &models.Product{
			ID:          id,
			Type:        models.ProductTypeSimple,
			StockStatus: models.StockStatusInStock,
			Terms: []models.Term{
				{ID: catID, Taxonomy: models.TaxonomyCategory, Slug: "cat"},
			},
		},
	}
}

func TestMatchEmptyConditions(t *testing.T) {
	res := Match(nil, &storefront.RequestContext{})
	if !res.Matched || res.Specificity != 0 {
		t.Errorf("empty conditions = %+v, want {true 0}", res)
	}
}

func TestMatchExcludeAlwaysWins(t *testing.T) {
	// Include matches AND exclude matches — exclude must veto.
	conds := []models.Condition{
		{Kind: models.KindAll, Mode: models.ModeInclude},
		{Kind: models.KindProductInStock, Mode: models.ModeExclude, Values: []string{"instock"}},
	}
	res := Match(conds, productInCategory(1, 5))
	if res.Matched {
		t.Error("a matched exclude condition must veto the template")
	}
	if res.Specificity != 0 {
		t.Errorf("vetoed specificity = %d, want 0", res.Specificity)
	}
}

// TestMatchIncludesAreOr pins the OR semantics across include conditions:
// one hit among several includes is enough.
func TestMatchIncludesAreOr(t *testing.T) {
	conds := []models.Condition{
		{Kind: models.KindProductCategory, Mode: models.ModeInclude, Values: []string{"999"}},
		{Kind: models.KindSpecificProduct, Mode: models.ModeInclude, Values: []string{"1"}},
	}
	res := Match(conds, productInCategory(1, 5))
	if !res.Matched {
		t.Error("any include hit must match (OR, not AND)")
	}
	// Only the hitting include contributes specificity: 100 + 1 value.
	if res.Specificity != 101 {
		t.Errorf("specificity = %d, want 101", res.Specificity)
	}

	// No include hits at all.
	res = Match(conds, productInCategory(2, 7))
	if res.Matched {
		t.Error("zero include hits must not match")
	}
}

func TestMatchExcludeOnlyList(t *testing.T) {
	conds := []models.Condition{
		{Kind: models.KindProductInStock, Mode: models.ModeExclude, Values: []string{"outofstock"}},
	}

	// In-stock product: exclude misses, no includes present → matched.
	res := Match(conds, productInCategory(1, 5))
	if !res.Matched {
		t.Error("exclude-only list with no hits must match")
	}

	// Out-of-stock product: exclude hits → vetoed.
	out := &storefront.RequestContext{
		Product: &models.Product{ID: 2, StockStatus: models.StockStatusOutOfStock},
	}
	if Match(conds, out).Matched {
		t.Error("exclude hit must veto")
	}
}

func TestMatchAccumulatesSpecificity(t *testing.T) {
	conds := []models.Condition{
		{Kind: models.KindProductCategory, Mode: models.ModeInclude, Values: []string{"5"}},
		{Kind: models.KindProductInStock, Mode: models.ModeInclude, Values: []string{"instock"}},
	}
	res := Match(conds, productInCategory(1, 5))
	if !res.Matched {
		t.Fatal("expected match")
	}
	// category (10+1) + stock (3+1) = 15.
	if res.Specificity != 15 {
		t.Errorf("specificity = %d, want 15", res.Specificity)
	}
}

func tmpl(title string, priority int, conds ...models.Condition) models.Template {
	return models.Template{
		ID:         uuid.New(),
		Title:      title,
		Type:       models.PageTypeSingleProduct,
		Status:     models.TemplateStatusPublished,
		Priority:   priority,
		Conditions: conds,
	}
}

func TestBestOfPriorityBeatsSpecificity(t *testing.T) {
	ctx := productInCategory(1, 5)

	low := tmpl("narrow but low priority", 10,
		models.Condition{Kind: models.KindSpecificProduct, Mode: models.ModeInclude, Values: []string{"1"}})
	high := tmpl("broad but high priority", 20)

	got := BestOf([]models.Template{low, high}, ctx)
	if got == nil || got.Title != high.Title {
		t.Errorf("BestOf selected %v, want the priority-20 template", got)
	}
}

func TestBestOfSpecificityBreaksTies(t *testing.T) {
	ctx := productInCategory(1, 5)

	broad := tmpl("unconditional", 10)
	narrow := tmpl("category targeted", 10,
		models.Condition{Kind: models.KindProductCategory, Mode: models.ModeInclude, Values: []string{"5"}})

	got := BestOf([]models.Template{broad, narrow}, ctx)
	if got == nil || got.Title != narrow.Title {
		t.Errorf("BestOf selected %v, want the specificity-11 template", got)
	}
}

func TestBestOfNoMatch(t *testing.T) {
	ctx := &storefront.RequestContext{} // unrelated page

	only := tmpl("category targeted", 10,
		models.Condition{Kind: models.KindProductCategory, Mode: models.ModeInclude, Values: []string{"5"}})

	if got := BestOf([]models.Template{only}, ctx); got != nil {
		t.Errorf("BestOf = %v, want nil when nothing matches", got)
	}
	if got := BestOf(nil, ctx); got != nil {
		t.Errorf("BestOf(nil) = %v, want nil", got)
	}
}

// TestBestOfScenarioFallback covers the canonical editor workflow: a
// targeted template plus an unconditional fallback at equal priority.
func TestBestOfScenarioFallback(t *testing.T) {
	targeted := tmpl("category five", 10,
		models.Condition{Kind: models.KindProductCategory, Mode: models.ModeInclude, Values: []string{"5"}})
	fallback := tmpl("default product page", 10)
	candidates := []models.Template{targeted, fallback}

	// Product in category 5 → targeted wins (specificity 11 > 0).
	got := BestOf(candidates, productInCategory(1, 5))
	if got == nil || got.Title != targeted.Title {
		t.Errorf("in-category selection = %v, want targeted template", got)
	}

	// Product outside category 5 → fallback serves.
	got = BestOf(candidates, productInCategory(2, 8))
	if got == nil || got.Title != fallback.Title {
		t.Errorf("out-of-category selection = %v, want fallback template", got)
	}
}
