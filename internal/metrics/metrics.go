// Package metrics defines the Prometheus instruments for the template
// engine. Everything is registered on the default registry and exposed
// through /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TemplateMatches counts template selections per page type.
	TemplateMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopwright",
		Name:      "template_matches_total",
		Help:      "Template selections that resolved to an override, per page type.",
	}, []string{"page_type"})

	// NativeRenders counts requests that fell back to native rendering.
	NativeRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopwright",
		Name:      "native_renders_total",
		Help:      "Storefront pages rendered natively (no template matched).",
	}, []string{"page_type"})

	// TemplateRenders counts full template renders (cache misses included).
	TemplateRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopwright",
		Name:      "template_renders_total",
		Help:      "Template widget-tree renders performed.",
	}, []string{"page_type"})

	// CacheHits and CacheMisses track the engine caches by name
	// ("template_list", "rendered_page").
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopwright",
		Name:      "cache_hits_total",
		Help:      "Engine cache hits by cache name.",
	}, []string{"cache"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopwright",
		Name:      "cache_misses_total",
		Help:      "Engine cache misses by cache name.",
	}, []string{"cache"})
)
