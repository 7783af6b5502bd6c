// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package conditions

import (
	"sort"

	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// MatchResult is the per-template verdict: whether the template applies
// to the current request and how narrowly its conditions target it.
type MatchResult struct {
	Matched     bool
	Specificity int
}

// Match evaluates a template's whole condition list.
//
// An empty list matches unconditionally with the lowest weight. Otherwise
// every condition is evaluated — no short-circuit, the evaluator is
// side-effect free and the full pass keeps specificity deterministic.
// A single exclude hit vetoes the template outright. Include conditions
// combine with OR, which lets one template serve several disjoint
// audiences; exclude is reserved for hard vetoes. A list holding only
// exclude conditions, none of which hit, matches.
func Match(conds []models.Condition, rc *storefront.RequestContext) MatchResult {
	if len(conds) == 0 {
		return MatchResult{Matched: true, Specificity: 0}
	}

	var (
		excludeHit  bool
		includeHit  bool
		hasInclude  bool
		specificity int
	)

	for _, c := range conds {
		hit := Evaluate(c, rc)
		switch c.Mode {
		case models.ModeExclude:
			if hit {
				excludeHit = true
			}
		default:
			hasInclude = true
			if hit {
				includeHit = true
				specificity += c.Specificity()
			}
		}
	}

	if excludeHit {
		return MatchResult{Matched: false, Specificity: 0}
	}
	if hasInclude {
		return MatchResult{Matched: includeHit, Specificity: specificity}
	}
	// Only exclude conditions present, none hit.
	return MatchResult{Matched: true, Specificity: specificity}
}

// BestOf selects the winning template among candidates for the current
// request: non-matching templates are discarded, the rest ordered by
// priority descending with specificity as tie-break. Returns nil when
// nothing matches, which callers treat as "render natively".
func BestOf(candidates []models.Template, rc *storefront.RequestContext) *models.Template {
	type scored struct {
		tmpl *models.Template
		res  MatchResult
	}

	var matched []scored
	for i := range candidates {
		res := Match(candidates[i].Conditions, rc)
		if res.Matched {
			matched = append(matched, scored{tmpl: &candidates[i], res: res})
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].tmpl.Priority != matched[j].tmpl.Priority {
			return matched[i].tmpl.Priority > matched[j].tmpl.Priority
		}
		return matched[i].res.Specificity > matched[j].res.Specificity
	})

	return matched[0].tmpl
}
