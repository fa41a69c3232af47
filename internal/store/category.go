// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for the timeline
// collections. Each store struct wraps a *sql.DB and exposes typed
// query methods. Lookups return (nil, nil) when no row matches.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
)

// CategoryStore manages timeline categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, color, post_count, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Color, &c.PostCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by creation time, newest first.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM timeline_categories
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM timeline_categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by its exact name (case-sensitive).
// Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM timeline_categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// FindByNameExcluding retrieves a category with the given name whose id
// differs from the one supplied. Used for rename conflict checks.
func (s *CategoryStore) FindByNameExcluding(name string, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`
		SELECT `+categoryColumns+` FROM timeline_categories
		WHERE name = $1 AND id <> $2
	`, name, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name excluding: %w", err)
	}
	return c, nil
}

// Create inserts a new category with a zero post count and returns it.
func (s *CategoryStore) Create(name, color string) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO timeline_categories (name, color)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		name, color,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update modifies a category's name and color.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE timeline_categories SET name = $1, color = $2, updated_at = NOW()
		WHERE id = $3
	`, c.Name, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM timeline_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// AdjustPostCount shifts the denormalized post counter for the named
// category by delta, clamped at zero. The category is addressed by name
// because posts reference categories by name, not id.
func (s *CategoryStore) AdjustPostCount(name string, delta int) error {
	_, err := s.db.Exec(`
		UPDATE timeline_categories
		SET post_count = GREATEST(post_count + $1, 0), updated_at = NOW()
		WHERE name = $2
	`, delta, name)
	if err != nil {
		return fmt.Errorf("adjust post count: %w", err)
	}
	return nil
}
