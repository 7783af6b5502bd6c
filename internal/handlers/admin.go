// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shopwright/internal/cache"
	"shopwright/internal/engine"
	"shopwright/internal/models"
	"shopwright/internal/slug"
	"shopwright/internal/store"
)

// Admin groups the builder's JSON API handlers. Every write invalidates
// the template-list cache and the rendered-output cache so storefront
// requests see changes promptly.
type Admin struct {
	templates   *store.TemplateStore
	settings    *store.SiteSettingStore
	manager     *engine.Manager
	renderCache *cache.RenderCache // nil when output caching is disabled
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(templates *store.TemplateStore, settings *store.SiteSettingStore, manager *engine.Manager, renderCache *cache.RenderCache) *Admin {
	return &Admin{
		templates:   templates,
		settings:    settings,
		manager:     manager,
		renderCache: renderCache,
	}
}

// ---------------------------------------------------------------------------
// JSON plumbing
// ---------------------------------------------------------------------------

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxContentLen+1))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// templateID parses the {id} route parameter.
func templateID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// invalidate flushes both caches after a template write. When the write
// touched one template, its rendered pages go too; list caches always go.
func (a *Admin) invalidate(r *http.Request, id uuid.UUID) {
	a.manager.Invalidate(r.Context())
	if a.renderCache != nil {
		a.renderCache.InvalidateTemplate(r.Context(), id)
	}
}

// ---------------------------------------------------------------------------
// Template CRUD
// ---------------------------------------------------------------------------

// TemplatesList returns templates, optionally filtered by ?type=.
func (a *Admin) TemplatesList(w http.ResponseWriter, r *http.Request) {
	var (
		templates []models.Template
		err       error
	)
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		pt := models.PageType(typeParam)
		if !pt.IsValid() {
			errorJSON(w, http.StatusBadRequest, "unknown page type")
			return
		}
		templates, err = a.templates.ListByType(pt)
	} else {
		templates, err = a.templates.List()
	}
	if err != nil {
		slog.Error("list templates failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "list templates failed")
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// TemplateGet returns one template with its conditions and content.
func (a *Admin) TemplateGet(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tmpl, err := a.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "find template failed")
		return
	}
	if tmpl == nil {
		errorJSON(w, http.StatusNotFound, "template not found")
		return
	}
	respondJSON(w, http.StatusOK, tmpl)
}

// TemplateCreate creates a new draft template.
func (a *Admin) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Type   string `json:"type"`
		Layout string `json:"layout"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateTemplateTitle(req.Title); msg != "" {
		errorJSON(w, http.StatusUnprocessableEntity, msg)
		return
	}
	pt := models.PageType(req.Type)
	if !pt.IsValid() {
		errorJSON(w, http.StatusUnprocessableEntity, "unknown page type")
		return
	}
	layout := models.Layout(req.Layout)
	if layout == "" {
		layout = models.LayoutHeaderFooter
	}
	if layout != models.LayoutCanvas && layout != models.LayoutHeaderFooter {
		errorJSON(w, http.StatusUnprocessableEntity, "unknown layout")
		return
	}

	tmpl, err := a.templates.Create(strings.TrimSpace(req.Title), slug.Generate(req.Title), pt, layout)
	if err != nil {
		slog.Error("create template failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "create template failed")
		return
	}

	slog.Info("template created", "id", tmpl.ID, "type", tmpl.Type, "title", tmpl.Title)
	respondJSON(w, http.StatusCreated, tmpl)
}

// TemplateUpdate changes a template's title and layout.
func (a *Admin) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req struct {
		Title  string `json:"title"`
		Layout string `json:"layout"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateTemplateTitle(req.Title); msg != "" {
		errorJSON(w, http.StatusUnprocessableEntity, msg)
		return
	}
	layout := models.Layout(req.Layout)
	if layout != models.LayoutCanvas && layout != models.LayoutHeaderFooter {
		errorJSON(w, http.StatusUnprocessableEntity, "unknown layout")
		return
	}

	tmpl, err := a.templates.FindByID(id)
	if err != nil || tmpl == nil {
		errorJSON(w, http.StatusNotFound, "template not found")
		return
	}

	tmpl.Title = strings.TrimSpace(req.Title)
	tmpl.Slug = slug.Generate(req.Title)
	tmpl.Layout = layout
	if err := a.templates.Update(tmpl); err != nil {
		slog.Error("update template failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "update template failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, tmpl)
}

// TemplateConditions replaces a template's condition list. The wire
// format uses {"type": "include|exclude", "condition": "<kind>",
// "value": <scalar or list>} entries.
func (a *Admin) TemplateConditions(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var conds []models.Condition
	if err := json.NewDecoder(io.LimitReader(r.Body, maxContentLen)).Decode(&conds); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid condition list")
		return
	}
	if msg := validateConditions(conds); msg != "" {
		errorJSON(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := a.templates.UpdateConditions(id, conds); err != nil {
		slog.Error("update conditions failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "update conditions failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]any{"conditions": conds})
}

// TemplatePriority sets a template's selection priority.
func (a *Admin) TemplatePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req struct {
		Priority int `json:"priority"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePriority(req.Priority); msg != "" {
		errorJSON(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := a.templates.UpdatePriority(id, req.Priority); err != nil {
		slog.Error("update priority failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "update priority failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]int{"priority": req.Priority})
}

// TemplateContent replaces the template's content blob (the builder's
// saved widget tree). The blob must parse as an element tree.
func (a *Admin) TemplateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxContentLen+1))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "read body failed")
		return
	}
	r.Body.Close()

	if len(body) > maxContentLen {
		errorJSON(w, http.StatusUnprocessableEntity, "content blob is too large")
		return
	}
	if _, err := engine.ParseContent(body); err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, "content blob is not a valid element tree")
		return
	}

	if err := a.templates.UpdateContent(id, body); err != nil {
		slog.Error("update content failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "update content failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// TemplatePublish marks a template published.
func (a *Admin) TemplatePublish(w http.ResponseWriter, r *http.Request) {
	a.setStatus(w, r, models.TemplateStatusPublished)
}

// TemplateUnpublish reverts a template to draft.
func (a *Admin) TemplateUnpublish(w http.ResponseWriter, r *http.Request) {
	a.setStatus(w, r, models.TemplateStatusDraft)
}

func (a *Admin) setStatus(w http.ResponseWriter, r *http.Request, status models.TemplateStatus) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := a.templates.UpdateStatus(id, status); err != nil {
		slog.Error("update status failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "update status failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// TemplateDuplicate deep-copies a template into a new draft.
func (a *Admin) TemplateDuplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil && err != io.EOF {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source, err := a.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "find template failed")
		return
	}
	if source == nil {
		errorJSON(w, http.StatusNotFound, "template not found")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = source.Title + " (Copy)"
	}
	if msg := validateTemplateTitle(title); msg != "" {
		errorJSON(w, http.StatusUnprocessableEntity, msg)
		return
	}

	// Suffix with a short random tail so the slug stays unique.
	copySlug := slug.Generate(title) + "-" + uuid.NewString()[:8]

	dup, err := a.templates.Duplicate(id, title, copySlug)
	if err != nil {
		slog.Error("duplicate template failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "duplicate template failed")
		return
	}
	if dup == nil {
		errorJSON(w, http.StatusNotFound, "template not found")
		return
	}

	slog.Info("template duplicated", "source", id, "copy", dup.ID)
	respondJSON(w, http.StatusCreated, dup)
}

// TemplateDelete permanently removes a template.
func (a *Admin) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := templateID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := a.templates.Delete(id); err != nil {
		slog.Error("delete template failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "delete template failed")
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------------
// Builder vocabulary + settings
// ---------------------------------------------------------------------------

// PageTypes returns the page types and their display labels for the
// builder's type picker.
func (a *Admin) PageTypes(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Type  models.PageType `json:"type"`
		Label string          `json:"label"`
	}
	out := make([]entry, 0, len(models.PageTypes))
	for _, pt := range models.PageTypes {
		out = append(out, entry{Type: pt, Label: models.PageTypeLabels[pt]})
	}
	respondJSON(w, http.StatusOK, map[string]any{"page_types": out})
}

// ConditionKinds returns the condition vocabulary for the builder's
// condition editor.
func (a *Admin) ConditionKinds(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Kind  models.ConditionKind `json:"kind"`
		Label string               `json:"label"`
	}
	out := make([]entry, 0, len(models.KindLabels))
	for kind := range models.BaseSpecificity {
		out = append(out, entry{Kind: kind, Label: models.KindLabels[kind]})
	}
	respondJSON(w, http.StatusOK, map[string]any{"kinds": out})
}

// SettingsGet returns all site settings.
func (a *Admin) SettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All()
	if err != nil {
		slog.Error("load settings failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "load settings failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// SettingsUpdate upserts site settings. Toggling the builder flushes
// every cache layer so the storefront flips immediately.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		errorJSON(w, http.StatusUnprocessableEntity, "no settings provided")
		return
	}

	if err := a.settings.SetMany(req); err != nil {
		slog.Error("save settings failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "save settings failed")
		return
	}

	if _, toggled := req[models.SettingBuilderEnabled]; toggled {
		a.manager.Invalidate(r.Context())
		if a.renderCache != nil {
			a.renderCache.InvalidateAll(r.Context())
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
