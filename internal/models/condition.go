// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
)

// ConditionKind names one rule family a template condition can use.
// The set is closed — the evaluator switches exhaustively over it.
type ConditionKind string

const (
	KindAll             ConditionKind = "all"
	KindProductType     ConditionKind = "product_type"
	KindProductCategory ConditionKind = "product_category"
	KindProductTag      ConditionKind = "product_tag"
	KindSpecificProduct ConditionKind = "specific_product"
	KindProductInStock  ConditionKind = "product_in_stock"
	KindProductOnSale   ConditionKind = "product_on_sale"
	KindUserRole        ConditionKind = "user_role"
	KindUserLoggedIn    ConditionKind = "user_logged_in"
)

// ConditionMode controls how a matched condition counts. An exclude
// condition that matches vetoes the whole template; include conditions
// OR together.
type ConditionMode string

const (
	ModeInclude ConditionMode = "include"
	ModeExclude ConditionMode = "exclude"
)

// BaseSpecificity holds the fixed tie-break weight per condition kind.
// Narrower targeting gets a higher weight; list-valued conditions add
// one point per value on top.
var BaseSpecificity = map[ConditionKind]int{
	KindAll:             1,
	KindProductType:     5,
	KindProductCategory: 10,
	KindProductTag:      10,
	KindSpecificProduct: 100,
	KindProductInStock:  3,
	KindProductOnSale:   3,
	KindUserRole:        5,
	KindUserLoggedIn:    2,
}

// KindLabels maps condition kinds to display names for the admin API.
var KindLabels = map[ConditionKind]string{
	KindAll:             "Entire Store",
	KindProductType:     "Product Type",
	KindProductCategory: "Product Category",
	KindProductTag:      "Product Tag",
	KindSpecificProduct: "Specific Product",
	KindProductInStock:  "Stock Status",
	KindProductOnSale:   "On Sale",
	KindUserRole:        "User Role",
	KindUserLoggedIn:    "Login State",
}

// IsValid reports whether k is a known condition kind.
func (k ConditionKind) IsValid() bool {
	_, ok := BaseSpecificity[k]
	return ok
}

// Condition is a single rule within a template's condition list.
// Values semantics depend on Kind: term ids or slugs for taxonomy kinds,
// product ids for specific_product, role names for user_role, and a
// single flag value for the equivalence-check kinds.
type Condition struct {
	Kind   ConditionKind `json:"kind"`
	Mode   ConditionMode `json:"mode"`
	Values []string      `json:"values"`
}

// Specificity returns this condition's tie-break weight: the kind's base
// weight plus one per value.
func (c Condition) Specificity() int {
	return BaseSpecificity[c.Kind] + len(c.Values)
}

// conditionWire is the admin API shape for a condition entry:
// {"type": "include", "condition": "product_category", "value": [...]}.
// value accepts either a single string or a list.
type conditionWire struct {
	Type      ConditionMode   `json:"type"`
	Condition ConditionKind   `json:"condition"`
	Value     json.RawMessage `json:"value"`
}

// UnmarshalJSON accepts both the storage shape (kind/mode/values) and the
// admin wire shape (type/condition/value with scalar-or-list value),
// normalizing a scalar value into a one-element list.
func (c *Condition) UnmarshalJSON(data []byte) error {
	type stored Condition
	var s stored
	if err := json.Unmarshal(data, &s); err == nil && s.Kind != "" {
		*c = Condition(s)
		return nil
	}

	var w conditionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode condition: %w", err)
	}
	if w.Condition == "" {
		return fmt.Errorf("decode condition: missing kind")
	}

	c.Kind = w.Condition
	c.Mode = w.Type
	c.Values = nil

	if len(w.Value) == 0 || string(w.Value) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(w.Value, &list); err == nil {
		c.Values = list
		return nil
	}

	var scalar string
	if err := json.Unmarshal(w.Value, &scalar); err == nil {
		c.Values = []string{scalar}
		return nil
	}

	// Numeric scalars and numeric lists show up from older builder
	// payloads. Coerce through the generic decoder.
	var anyVal any
	if err := json.Unmarshal(w.Value, &anyVal); err != nil {
		return fmt.Errorf("decode condition value: %w", err)
	}
	switch v := anyVal.(type) {
	case float64:
		c.Values = []string{trimFloat(v)}
	case []any:
		for _, item := range v {
			switch iv := item.(type) {
			case string:
				c.Values = append(c.Values, iv)
			case float64:
				c.Values = append(c.Values, trimFloat(iv))
			}
		}
	}
	return nil
}

// trimFloat formats a JSON number without a trailing ".0" for integers.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
