// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"shopwright/internal/models"
)

// TemplateStore handles all builder-template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `id, title, slug, type, layout, status, priority, conditions, content, created_at, updated_at`

// scanTemplate scans a row into a Template, decoding the conditions blob.
func scanTemplate(scanner interface{ Scan(...any) error }) (*models.Template, error) {
	var t models.Template
	var conds []byte
	err := scanner.Scan(
		&t.ID, &t.Title, &t.Slug, &t.Type, &t.Layout, &t.Status,
		&t.Priority, &conds, &t.Content, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(conds) > 0 {
		if err := json.Unmarshal(conds, &t.Conditions); err != nil {
			return nil, fmt.Errorf("decode template conditions: %w", err)
		}
	}
	return &t, nil
}

// List returns all templates ordered by type and title.
func (s *TemplateStore) List() ([]models.Template, error) {
	return s.query(`SELECT `+templateColumns+` FROM templates ORDER BY type, title`, "list templates")
}

// ListByType returns all templates of one page type, any status, for the
// admin API.
func (s *TemplateStore) ListByType(pt models.PageType) ([]models.Template, error) {
	return s.query(`SELECT `+templateColumns+` FROM templates WHERE type = $1 ORDER BY priority DESC, title`,
		"list templates by type", pt)
}

// ListPublishedByType returns the matching candidates for one page type:
// published templates ordered by priority descending.
func (s *TemplateStore) ListPublishedByType(pt models.PageType) ([]models.Template, error) {
	return s.query(`SELECT `+templateColumns+` FROM templates WHERE type = $1 AND status = 'published' ORDER BY priority DESC, title`,
		"list published templates", pt)
}

func (s *TemplateStore) query(q, op string, args ...any) ([]models.Template, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.Template, error) {
	t, err := scanTemplate(s.db.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new draft template with default priority, no
// conditions, and an empty content blob.
func (s *TemplateStore) Create(title, slug string, pt models.PageType, layout models.Layout) (*models.Template, error) {
	row := s.db.QueryRow(`
		INSERT INTO templates (title, slug, type, layout, status, priority, conditions, content)
		VALUES ($1, $2, $3, $4, 'draft', $5, '[]', '[]')
		RETURNING `+templateColumns,
		title, slug, pt, layout, models.DefaultPriority,
	)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update modifies a template's title, slug, and layout.
func (s *TemplateStore) Update(t *models.Template) error {
	_, err := s.db.Exec(`
		UPDATE templates SET title = $1, slug = $2, layout = $3, updated_at = NOW()
		WHERE id = $4
	`, t.Title, t.Slug, t.Layout, t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// UpdateConditions replaces a template's condition list.
func (s *TemplateStore) UpdateConditions(id uuid.UUID, conds []models.Condition) error {
	if conds == nil {
		conds = []models.Condition{}
	}
	payload, err := json.Marshal(conds)
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE templates SET conditions = $1, updated_at = NOW() WHERE id = $2
	`, payload, id)
	if err != nil {
		return fmt.Errorf("update conditions: %w", err)
	}
	return nil
}

// UpdatePriority sets a template's selection priority.
func (s *TemplateStore) UpdatePriority(id uuid.UUID, priority int) error {
	_, err := s.db.Exec(`
		UPDATE templates SET priority = $1, updated_at = NOW() WHERE id = $2
	`, priority, id)
	if err != nil {
		return fmt.Errorf("update priority: %w", err)
	}
	return nil
}

// UpdateContent replaces a template's content blob (the builder's saved
// widget tree).
func (s *TemplateStore) UpdateContent(id uuid.UUID, content []byte) error {
	if len(content) == 0 {
		content = []byte("[]")
	}
	_, err := s.db.Exec(`
		UPDATE templates SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, id)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// UpdateStatus publishes or unpublishes a template.
func (s *TemplateStore) UpdateStatus(id uuid.UUID, status models.TemplateStatus) error {
	_, err := s.db.Exec(`
		UPDATE templates SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Duplicate deep-copies a template's content, conditions, and meta into
// a new draft with a fresh identity. Returns nil if the source doesn't
// exist.
func (s *TemplateStore) Duplicate(id uuid.UUID, title, slug string) (*models.Template, error) {
	row := s.db.QueryRow(`
		INSERT INTO templates (title, slug, type, layout, status, priority, conditions, content)
		SELECT $2, $3, type, layout, 'draft', priority, conditions, content
		FROM templates WHERE id = $1
		RETURNING `+templateColumns,
		id, title, slug,
	)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("duplicate template: %w", err)
	}
	return t, nil
}

// Delete permanently removes a template. Nothing cascades — templates
// have no child entities.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Count returns the total number of templates.
func (s *TemplateStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}
