// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package conditions implements the template condition engine: evaluating
// single conditions against the request context and combining a template's
// condition list into a match verdict with a specificity weight.
package conditions

import (
	"strconv"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// Evaluate checks one condition's predicate against the request context.
// A kind evaluated outside its expected context (e.g. product_type while
// not on a product page) is false, never an error.
func Evaluate(c models.Condition, rc *storefront.RequestContext) bool {
	switch c.Kind {
	case models.KindAll:
		return true

	case models.KindProductType:
		if rc.Product == nil {
			return false
		}
		return contains(c.Values, string(rc.Product.Type))

	case models.KindProductCategory:
		return matchTaxonomy(c.Values, models.TaxonomyCategory, rc)

	case models.KindProductTag:
		return matchTaxonomy(c.Values, models.TaxonomyTag, rc)

	case models.KindSpecificProduct:
		if rc.Product == nil {
			return false
		}
		for _, v := range c.Values {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				continue
			}
			if id == rc.Product.ID {
				return true
			}
		}
		return false

	case models.KindProductInStock:
		if rc.Product == nil {
			return false
		}
		return contains(c.Values, string(rc.Product.StockStatus))

	case models.KindProductOnSale:
		if rc.Product == nil {
			return false
		}
		// Equivalence check: "yes" must equal the sale state, so
		// "no" positively matches non-sale products.
		return (flag(c.Values) == "yes") == rc.Product.OnSale()

	case models.KindUserRole:
		if !rc.LoggedIn {
			return false
		}
		for _, v := range c.Values {
			if rc.HasRole(v) {
				return true
			}
		}
		return false

	case models.KindUserLoggedIn:
		// Same equivalence pattern as product_on_sale.
		return (flag(c.Values) == "logged_in") == rc.LoggedIn

	default:
		// Unknown kinds never match.
		return false
	}
}

// matchTaxonomy matches taxonomy conditions in two contexts: on a term
// archive the archived term's id or slug must be listed; on a single
// product any of the product's terms in that taxonomy must be listed.
// Everywhere else the condition is false.
func matchTaxonomy(values []string, tax models.Taxonomy, rc *storefront.RequestContext) bool {
	if rc.ArchiveTerm != nil && rc.ArchiveTerm.Taxonomy == tax {
		return termListed(values, *rc.ArchiveTerm)
	}
	if rc.Product != nil {
		for _, t := range rc.Product.TermsFor(tax) {
			if termListed(values, t) {
				return true
			}
		}
	}
	return false
}

// termListed reports whether the term's numeric id or slug appears in values.
func termListed(values []string, t models.Term) bool {
	id := strconv.FormatInt(t.ID, 10)
	for _, v := range values {
		if v == id || v == t.Slug {
			return true
		}
	}
	return false
}

// flag returns the single flag value for equivalence-check kinds. Scalars
// arrive normalized as one-element lists; extra elements are ignored.
func flag(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
