// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestConditionKindIsValid(t *testing.T) {
	for kind := range BaseSpecificity {
		if !kind.IsValid() {
			t.Errorf("%s should be valid", kind)
		}
	}
	if ConditionKind("product_color").IsValid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestConditionSpecificity(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want int
	}{
		{"all has base weight", Condition{Kind: KindAll, Mode: ModeInclude}, 1},
		{"specific product", Condition{Kind: KindSpecificProduct, Mode: ModeInclude, Values: []string{"42"}}, 101},
		{"category adds per value", Condition{Kind: KindProductCategory, Mode: ModeInclude, Values: []string{"desks", "chairs"}}, 12},
		{"logged in", Condition{Kind: KindUserLoggedIn, Mode: ModeInclude, Values: []string{"yes"}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Specificity(); got != tt.want {
				t.Errorf("Specificity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConditionUnmarshalStorageShape(t *testing.T) {
	payload := `{"kind": "product_category", "mode": "include", "values": ["desks"]}`

	var c Condition
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Kind != KindProductCategory || c.Mode != ModeInclude {
		t.Errorf("decoded = %+v", c)
	}
	if !reflect.DeepEqual(c.Values, []string{"desks"}) {
		t.Errorf("values = %v, want [desks]", c.Values)
	}
}

func TestConditionUnmarshalWireShape(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantKind   ConditionKind
		wantMode   ConditionMode
		wantValues []string
	}{
		{
			"list value",
			`{"type": "include", "condition": "product_category", "value": ["desks", "chairs"]}`,
			KindProductCategory, ModeInclude, []string{"desks", "chairs"},
		},
		{
			"scalar string value",
			`{"type": "exclude", "condition": "user_role", "value": "customer"}`,
			KindUserRole, ModeExclude, []string{"customer"},
		},
		{
			"numeric scalar",
			`{"type": "include", "condition": "specific_product", "value": 42}`,
			KindSpecificProduct, ModeInclude, []string{"42"},
		},
		{
			"numeric list",
			`{"type": "include", "condition": "specific_product", "value": [7, 9]}`,
			KindSpecificProduct, ModeInclude, []string{"7", "9"},
		},
		{
			"null value",
			`{"type": "include", "condition": "all", "value": null}`,
			KindAll, ModeInclude, nil,
		},
		{
			"missing value",
			`{"type": "include", "condition": "user_logged_in"}`,
			KindUserLoggedIn, ModeInclude, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Condition
			if err := json.Unmarshal([]byte(tt.payload), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", c.Kind, tt.wantKind)
			}
			if c.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", c.Mode, tt.wantMode)
			}
			if !reflect.DeepEqual(c.Values, tt.wantValues) {
				t.Errorf("values = %v, want %v", c.Values, tt.wantValues)
			}
		})
	}
}

func TestConditionUnmarshalMissingKind(t *testing.T) {
	var c Condition
	if err := json.Unmarshal([]byte(`{"type": "include", "value": "x"}`), &c); err == nil {
		t.Error("expected an error for a condition without a kind")
	}
}

func TestConditionListRoundtrip(t *testing.T) {
	conds := []Condition{
		{Kind: KindAll, Mode: ModeInclude},
		{Kind: KindProductTag, Mode: ModeExclude, Values: []string{"clearance"}},
	}

	payload, err := json.Marshal(conds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded []Condition
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(conds, decoded) {
		t.Errorf("roundtrip mismatch: %+v != %+v", decoded, conds)
	}
}
