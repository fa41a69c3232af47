// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package timeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
)

// In-memory store fakes. They keep just enough behavior for the service
// logic under test: lookups return (nil, nil) on miss like the real
// stores, and writes mutate plain slices.

type fakeCategories struct {
	items []*models.Category

	// adjustments records every AdjustPostCount call as name -> summed delta.
	adjustments map[string]int
}

func newFakeCategories(names ...string) *fakeCategories {
	f := &fakeCategories{adjustments: map[string]int{}}
	for _, name := range names {
		f.items = append(f.items, &models.Category{
			ID:        uuid.New(),
			Name:      name,
			Color:     models.DefaultCategoryColor,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}
	return f
}

func (f *fakeCategories) List() ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategories) FindByID(id uuid.UUID) (*models.Category, error) {
	for _, c := range f.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindByName(name string) (*models.Category, error) {
	for _, c := range f.items {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindByNameExcluding(name string, id uuid.UUID) (*models.Category, error) {
	for _, c := range f.items {
		if c.Name == name && c.ID != id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) Create(name, color string) (*models.Category, error) {
	c := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.items = append(f.items, c)
	cp := *c
	return &cp, nil
}

func (f *fakeCategories) Update(c *models.Category) error {
	for i, existing := range f.items {
		if existing.ID == c.ID {
			cp := *c
			f.items[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeCategories) Delete(id uuid.UUID) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCategories) AdjustPostCount(name string, delta int) error {
	f.adjustments[name] += delta
	for _, c := range f.items {
		if c.Name == name {
			c.PostCount += delta
			if c.PostCount < 0 {
				c.PostCount = 0
			}
		}
	}
	return nil
}

type fakePosts struct {
	items []*models.Post
}

func (f *fakePosts) matches(p *models.Post, flt store.PostFilter) bool {
	if flt.Category != "" && p.Category != flt.Category {
		return false
	}
	if flt.Status != "" && string(p.Status) != flt.Status {
		return false
	}
	if flt.Year != nil && p.Year != *flt.Year {
		return false
	}
	return true
}

func (f *fakePosts) List(flt store.PostFilter) ([]models.Post, error) {
	var filtered []models.Post
	for _, p := range f.items {
		if f.matches(p, flt) {
			filtered = append(filtered, *p)
		}
	}
	offset := (flt.Page - 1) * flt.Limit
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + flt.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakePosts) Count(flt store.PostFilter) (int, error) {
	n := 0
	for _, p := range f.items {
		if f.matches(p, flt) {
			n++
		}
	}
	return n, nil
}

func (f *fakePosts) FindByID(id uuid.UUID) (*models.Post, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) FindByTitleDate(title, date string) (*models.Post, error) {
	for _, p := range f.items {
		if p.Title == title && p.Date == date {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) FindByTitleDateExcluding(title, date string, id uuid.UUID) (*models.Post, error) {
	for _, p := range f.items {
		if p.Title == title && p.Date == date && p.ID != id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) Create(p *models.Post) (*models.Post, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = time.Now()
	f.items = append(f.items, &cp)
	out := cp
	return &out, nil
}

func (f *fakePosts) Update(p *models.Post) error {
	for i, existing := range f.items {
		if existing.ID == p.ID {
			cp := *p
			f.items[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakePosts) UpdateStatus(id uuid.UUID, status models.PostStatus) error {
	for _, p := range f.items {
		if p.ID == id {
			p.Status = status
		}
	}
	return nil
}

func (f *fakePosts) Delete(id uuid.UUID) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePosts) ListPublishedByCategory(category string, limit int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.items {
		if p.Category == category && p.Status == models.PostStatusPublished {
			out = append(out, *p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakePosts) CountByCategory(category string) (int, error) {
	n := 0
	for _, p := range f.items {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

type fakeRequests struct {
	items []*models.PostRequest

	// reviewed records MarkReviewed calls in order.
	reviewed []models.RequestStatus
}

func (f *fakeRequests) matches(r *models.PostRequest, flt store.RequestFilter) bool {
	if flt.Status != "" && string(r.Status) != flt.Status {
		return false
	}
	if flt.Year != nil && r.Year != *flt.Year {
		return false
	}
	return true
}

func (f *fakeRequests) List(flt store.RequestFilter) ([]models.PostRequest, error) {
	var filtered []models.PostRequest
	for _, r := range f.items {
		if f.matches(r, flt) {
			filtered = append(filtered, *r)
		}
	}
	offset := (flt.Page - 1) * flt.Limit
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + flt.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakeRequests) Count(flt store.RequestFilter) (int, error) {
	n := 0
	for _, r := range f.items {
		if f.matches(r, flt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRequests) FindByID(id uuid.UUID) (*models.PostRequest, error) {
	for _, r := range f.items {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRequests) Create(r *models.PostRequest) (*models.PostRequest, error) {
	cp := *r
	cp.ID = uuid.New()
	cp.Status = models.RequestStatusPending
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = time.Now()
	f.items = append(f.items, &cp)
	out := cp
	return &out, nil
}

func (f *fakeRequests) MarkReviewed(id uuid.UUID, status models.RequestStatus, notes, reviewer string) error {
	f.reviewed = append(f.reviewed, status)
	for _, r := range f.items {
		if r.ID == id {
			now := time.Now()
			r.Status = status
			r.ReviewNotes = notes
			r.ReviewedBy = &reviewer
			r.ReviewedAt = &now
		}
	}
	return nil
}

func (f *fakeRequests) Delete(id uuid.UUID) error {
	for i, r := range f.items {
		if r.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRequests) CountByStatus(status models.RequestStatus) (int, error) {
	n := 0
	for _, r := range f.items {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeFiles struct {
	deleted []string
}

func (f *fakeFiles) URL(filename *string) *string {
	if filename == nil {
		return nil
	}
	url := "/uploads/timeline/" + *filename
	return &url
}

func (f *fakeFiles) Delete(filename *string) error {
	if filename != nil {
		f.deleted = append(f.deleted, *filename)
	}
	return nil
}

func strPtr(s string) *string { return &s }
