// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// assets.go collects the style/script handles a rendered template needs.
// Template substitution happens earlier in the request than the normal
// asset pipeline, so the renderer emits these tags itself: the global
// frontend bundle first, then the template's generated stylesheet, then
// every handle declared by the widget types found in the content tree.
package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shopwright/internal/widgets"
)

// Global handles every overridden page carries.
const (
	globalStyleHandle  = "sw-frontend"
	globalScriptHandle = "sw-frontend"
)

// AssetSet is the deduplicated, order-stable handle collection for one
// rendered template.
type AssetSet struct {
	Styles  []string
	Scripts []string
}

// collectAssets walks the tree's distinct widget types and gathers their
// declared handles from the registry. Handles for unregistered widget
// types are simply absent. First-seen order is preserved so output is
// deterministic.
func collectAssets(tree []Element, registry *widgets.Registry, templateID uuid.UUID) AssetSet {
	set := AssetSet{
		Styles:  []string{globalStyleHandle, templateStyleHandle(templateID)},
		Scripts: []string{globalScriptHandle},
	}

	seenStyle := map[string]bool{globalStyleHandle: true, set.Styles[1]: true}
	seenScript := map[string]bool{globalScriptHandle: true}

	for _, wt := range WidgetTypes(tree) {
		styles, scripts := registry.Handles(wt)
		for _, h := range styles {
			if !seenStyle[h] {
				seenStyle[h] = true
				set.Styles = append(set.Styles, h)
			}
		}
		for _, h := range scripts {
			if !seenScript[h] {
				seenScript[h] = true
				set.Scripts = append(set.Scripts, h)
			}
		}
	}
	return set
}

// templateStyleHandle names the generated per-template stylesheet.
func templateStyleHandle(id uuid.UUID) string {
	return "sw-template-" + id.String()
}

// Tags renders the asset set as HTML link and script tags.
func (a AssetSet) Tags() string {
	var b strings.Builder
	for _, h := range a.Styles {
		fmt.Fprintf(&b, `<link rel="stylesheet" id="%s-css" href="/assets/css/%s.css">`, h, h)
		b.WriteByte('\n')
	}
	for _, h := range a.Scripts {
		fmt.Fprintf(&b, `<script defer id="%s-js" src="/assets/js/%s.js"></script>`, h, h)
		b.WriteByte('\n')
	}
	return b.String()
}
