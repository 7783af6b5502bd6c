// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine selects, renders, and caches builder templates for
// storefront pages. The manager resolves which template (if any) takes
// over the current request; the renderer turns its stored widget tree
// into HTML with the assets the tree needs.
package engine

import (
	"encoding/json"
	"fmt"
)

// Element is one node of a template's content blob: a section, column,
// or widget. Sections and columns nest; widgets are leaves carrying a
// widget-type token and settings.
type Element struct {
	ID         string         `json:"id"`
	ElType     string         `json:"elType"` // "section", "column", "widget"
	WidgetType string         `json:"widgetType,omitempty"`
	Settings   map[string]any `json:"settings,omitempty"`
	Elements   []Element      `json:"elements,omitempty"`
}

// IsWidget reports whether the element is a widget leaf.
func (e *Element) IsWidget() bool {
	return e.ElType == "widget" && e.WidgetType != ""
}

// ParseContent decodes a stored content blob into its element tree.
// An empty blob is a valid empty tree, not an error.
func ParseContent(blob []byte) ([]Element, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	var tree []Element
	if err := json.Unmarshal(blob, &tree); err != nil {
		return nil, fmt.Errorf("parse content blob: %w", err)
	}
	return tree, nil
}

// WidgetTypes walks the tree recursively and returns every distinct
// widget-type token in first-seen order. Order stability matters: asset
// tags are emitted in this order.
func WidgetTypes(tree []Element) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func([]Element)
	walk = func(els []Element) {
		for i := range els {
			if els[i].IsWidget() && !seen[els[i].WidgetType] {
				seen[els[i].WidgetType] = true
				out = append(out, els[i].WidgetType)
			}
			walk(els[i].Elements)
		}
	}
	walk(tree)
	return out
}

// FindWidgets returns every widget element of the given type, in
// document order.
func FindWidgets(tree []Element, widgetType string) []Element {
	var out []Element
	var walk func([]Element)
	walk = func(els []Element) {
		for i := range els {
			if els[i].IsWidget() && els[i].WidgetType == widgetType {
				out = append(out, els[i])
			}
			walk(els[i].Elements)
		}
	}
	walk(tree)
	return out
}
