// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package timeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
)

// Registry manages the category collection. Duplicate names are caught
// by case-sensitive pre-insert lookup; deletion is guarded by a live
// recount of referencing posts, not the cached post_count column.
type Registry struct {
	categories CategoryStore
	posts      PostStore
}

// NewRegistry returns a Registry backed by the given stores.
func NewRegistry(categories CategoryStore, posts PostStore) *Registry {
	return &Registry{categories: categories, posts: posts}
}

// List returns all categories, newest first.
func (r *Registry) List() ([]models.Category, error) {
	return r.categories.List()
}

// Create adds a category with a zero post count. An empty color falls
// back to the default display tag.
func (r *Registry) Create(name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("category name is required")
	}

	existing, err := r.categories.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("a category with this name already exists")
	}

	if color == "" {
		color = models.DefaultCategoryColor
	}
	return r.categories.Create(name, color)
}

// Update renames a category and optionally changes its color. An empty
// color keeps the current one. Renaming does NOT cascade to posts that
// reference the old name; they keep pointing at a name that no longer
// exists as a category.
func (r *Registry) Update(id uuid.UUID, name, color string) (*models.Category, error) {
	existing, err := r.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("category not found")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("category name is required")
	}

	dup, err := r.categories.FindByNameExcluding(name, id)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, conflict("a category with this name already exists")
	}

	existing.Name = name
	if color != "" {
		existing.Color = color
	}
	if err := r.categories.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a category, refusing while any post still references
// it by name.
func (r *Registry) Delete(id uuid.UUID) error {
	existing, err := r.categories.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("category not found")
	}

	inUse, err := r.posts.CountByCategory(existing.Name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return conflict("this category is used by existing posts and cannot be deleted")
	}

	return r.categories.Delete(id)
}
