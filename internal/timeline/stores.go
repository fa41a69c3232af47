// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package timeline holds the domain core of the moderated content
// pipeline: the category registry, the timeline post catalog, and the
// post request review workflow. Services depend on narrow store
// interfaces so the coordination logic is testable without a database.
package timeline

import (
	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
)

// CategoryStore is the persistence surface for categories.
// Implemented by store.CategoryStore. Lookups return (nil, nil) when no
// record matches.
type CategoryStore interface {
	List() ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	FindByNameExcluding(name string, id uuid.UUID) (*models.Category, error)
	Create(name, color string) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
	AdjustPostCount(name string, delta int) error
}

// PostStore is the persistence surface for timeline posts.
// Implemented by store.PostStore.
type PostStore interface {
	List(f store.PostFilter) ([]models.Post, error)
	Count(f store.PostFilter) (int, error)
	FindByID(id uuid.UUID) (*models.Post, error)
	FindByTitleDate(title, date string) (*models.Post, error)
	FindByTitleDateExcluding(title, date string, id uuid.UUID) (*models.Post, error)
	Create(p *models.Post) (*models.Post, error)
	Update(p *models.Post) error
	UpdateStatus(id uuid.UUID, status models.PostStatus) error
	Delete(id uuid.UUID) error
	ListPublishedByCategory(category string, limit int) ([]models.Post, error)
	CountByCategory(category string) (int, error)
}

// RequestStore is the persistence surface for post requests.
// Implemented by store.RequestStore.
type RequestStore interface {
	List(f store.RequestFilter) ([]models.PostRequest, error)
	Count(f store.RequestFilter) (int, error)
	FindByID(id uuid.UUID) (*models.PostRequest, error)
	Create(r *models.PostRequest) (*models.PostRequest, error)
	MarkReviewed(id uuid.UUID, status models.RequestStatus, notes, reviewer string) error
	Delete(id uuid.UUID) error
	CountByStatus(status models.RequestStatus) (int, error)
}

// FileStore resolves public URLs for stored images and removes them.
// Implemented by upload.Store. Delete must be idempotent: a nil or
// already-missing file is a no-op.
type FileStore interface {
	URL(filename *string) *string
	Delete(filename *string) error
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// normalizePage clamps page/limit to sane positive values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// totalPages computes ceil(total/limit) for pagination envelopes.
func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
