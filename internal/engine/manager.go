// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shopwright/internal/conditions"
	"shopwright/internal/metrics"
	"shopwright/internal/models"
	"shopwright/internal/storefront"
)

// TemplateSource is the slice of the template store the manager needs.
// Narrowed to an interface so manager tests run without a database.
type TemplateSource interface {
	ListPublishedByType(pt models.PageType) ([]models.Template, error)
}

// SettingSource reads one site setting with a fallback.
type SettingSource interface {
	Get(key, fallback string) (string, error)
}

// Manager resolves which template, if any, takes over the current
// request. Every method degrades to nil without error when the builder
// is disabled or a backing service is unavailable — callers treat nil
// as "render natively".
type Manager struct {
	templates TemplateSource
	settings  SettingSource
	cache     *listCache
}

// NewManager creates a template manager. redisClient may be nil, which
// disables the candidate-list cache.
func NewManager(templates TemplateSource, settings SettingSource, redisClient *redis.Client, cacheTTL time.Duration) *Manager {
	return &Manager{
		templates: templates,
		settings:  settings,
		cache:     newListCache(redisClient, cacheTTL),
	}
}

// Enabled reports whether template overrides are globally on. Missing
// setting or a settings store error both default to enabled — a broken
// settings read must not blank the storefront builder.
func (m *Manager) Enabled() bool {
	if m.settings == nil {
		return true
	}
	val, err := m.settings.Get(models.SettingBuilderEnabled, "true")
	if err != nil {
		slog.Warn("builder enabled lookup failed", "error", err)
		return true
	}
	return val != "false"
}

// TemplatesForType returns the published candidates for one page type,
// served from the Valkey cache when fresh.
func (m *Manager) TemplatesForType(ctx context.Context, pt models.PageType) []models.Template {
	if m.templates == nil || !pt.IsValid() || !m.Enabled() {
		return nil
	}

	if cached, ok := m.cache.get(ctx, pt); ok {
		metrics.CacheHits.WithLabelValues("template_list").Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues("template_list").Inc()

	templates, err := m.templates.ListPublishedByType(pt)
	if err != nil {
		slog.Error("template candidate lookup failed", "type", pt, "error", err)
		return nil
	}

	m.cache.put(ctx, pt, templates)
	return templates
}

// TemplateForRequest resolves the page type from the request context and
// selects the best-matching template for it. Returns the template and
// the resolved page type; a nil template means native rendering.
func (m *Manager) TemplateForRequest(ctx context.Context, rc *storefront.RequestContext) (*models.Template, models.PageType) {
	pageType := rc.ResolvePageType()
	if pageType == "" {
		return nil, ""
	}

	tmpl := conditions.BestOf(m.TemplatesForType(ctx, pageType), rc)
	if tmpl == nil {
		metrics.NativeRenders.WithLabelValues(string(pageType)).Inc()
		return nil, pageType
	}

	metrics.TemplateMatches.WithLabelValues(string(pageType)).Inc()
	slog.Debug("template selected",
		"type", pageType,
		"template", tmpl.ID,
		"title", tmpl.Title,
	)
	return tmpl, pageType
}

// Invalidate flushes the candidate-list cache for every page type.
// Called by the admin handlers after any template write; flushing all
// types on any change over-invalidates safely.
func (m *Manager) Invalidate(ctx context.Context) {
	m.cache.flush(ctx)
}
