// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package timeline

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
)

// PostInput carries the editable fields of a post. Year arrives as the
// raw form value; the catalog requires it to parse, unlike the workflow
// which tolerates garbage years on public submissions.
type PostInput struct {
	Title       string
	Date        string
	Description string
	Category    string
	Location    string
	Year        string
	Status      string

	// Image is the stored filename of a freshly uploaded file, or nil
	// when no replacement was uploaded.
	Image *string
}

// PostPage is one page of a filtered post listing.
type PostPage struct {
	Posts      []models.Post
	Total      int
	Page       int
	TotalPages int
}

// Catalog manages published and draft timeline posts, including the
// category post-count side effects of every mutation. Count adjustments
// and file deletions run after the primary record write and never roll
// it back; their failures are logged as consistency caveats.
type Catalog struct {
	posts      PostStore
	categories CategoryStore
	files      FileStore
}

// NewCatalog returns a Catalog backed by the given stores.
func NewCatalog(posts PostStore, categories CategoryStore, files FileStore) *Catalog {
	return &Catalog{posts: posts, categories: categories, files: files}
}

// List returns a filtered, paginated page of posts sorted by year
// descending then creation time descending, each annotated with its
// derived image URL.
func (c *Catalog) List(f store.PostFilter) (*PostPage, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	total, err := c.posts.Count(f)
	if err != nil {
		return nil, err
	}
	posts, err := c.posts.List(f)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ImageURL = c.files.URL(posts[i].Image)
	}

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       f.Page,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// Get returns a single post with its derived image URL.
func (c *Catalog) Get(id uuid.UUID) (*models.Post, error) {
	post, err := c.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, notFound("post not found")
	}
	post.ImageURL = c.files.URL(post.Image)
	return post, nil
}

// validateInput checks the required fields shared by Create and Update
// and returns the trimmed values plus the parsed year.
func (c *Catalog) validateInput(in PostInput) (PostInput, int, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return in, 0, validation("title is required")
	}
	if in.Date == "" {
		return in, 0, validation("date is required")
	}
	if in.Description == "" {
		return in, 0, validation("description is required")
	}
	if in.Category == "" {
		return in, 0, validation("category is required")
	}

	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	if err != nil {
		return in, 0, validation("a valid year is required")
	}

	cat, err := c.categories.FindByName(in.Category)
	if err != nil {
		return in, 0, err
	}
	if cat == nil {
		return in, 0, validation("category not found")
	}

	return in, year, nil
}

// Create adds a post and increments its category's post count. A post
// with the same (title, date) pair as an existing one is rejected.
func (c *Catalog) Create(in PostInput) (*models.Post, error) {
	in, year, err := c.validateInput(in)
	if err != nil {
		return nil, err
	}

	dup, err := c.posts.FindByTitleDate(in.Title, in.Date)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, conflict("a post with this title and date already exists")
	}

	status := models.PostStatus(in.Status)
	if in.Status == "" {
		status = models.PostStatusDraft
	} else if !status.Valid() {
		return nil, validation("a valid status is required")
	}

	created, err := c.posts.Create(&models.Post{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Year:        year,
		Status:      status,
		Image:       in.Image,
	})
	if err != nil {
		return nil, err
	}

	// Post count maintenance happens after the insert committed; a
	// failure here leaves the counter stale, not the post missing.
	if err := c.categories.AdjustPostCount(in.Category, 1); err != nil {
		slog.Error("post count increment failed", "category", in.Category, "error", err)
	}

	created.ImageURL = c.files.URL(created.Image)
	return created, nil
}

// Update edits a post. A changed category moves one count from the old
// category to the new one in two separate writes. When a replacement
// image was uploaded, the previous file is deleted only after the record
// update succeeds; without a replacement the old image stays.
func (c *Catalog) Update(id uuid.UUID, in PostInput) (*models.Post, error) {
	existing, err := c.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("post not found")
	}

	in, year, err := c.validateInput(in)
	if err != nil {
		return nil, err
	}

	dup, err := c.posts.FindByTitleDateExcluding(in.Title, in.Date, id)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, conflict("a post with this title and date already exists")
	}

	status := existing.Status
	if in.Status != "" {
		status = models.PostStatus(in.Status)
		if !status.Valid() {
			return nil, validation("a valid status is required")
		}
	}

	oldCategory := existing.Category
	oldImage := existing.Image

	existing.Title = in.Title
	existing.Date = in.Date
	existing.Description = in.Description
	existing.Category = in.Category
	existing.Location = in.Location
	existing.Year = year
	existing.Status = status
	if in.Image != nil {
		existing.Image = in.Image
	}

	if err := c.posts.Update(existing); err != nil {
		return nil, err
	}

	if oldCategory != in.Category {
		if err := c.categories.AdjustPostCount(oldCategory, -1); err != nil {
			slog.Error("post count decrement failed", "category", oldCategory, "error", err)
		}
		if err := c.categories.AdjustPostCount(in.Category, 1); err != nil {
			slog.Error("post count increment failed", "category", in.Category, "error", err)
		}
	}

	if in.Image != nil && oldImage != nil {
		if err := c.files.Delete(oldImage); err != nil {
			slog.Warn("old image delete failed", "image", *oldImage, "error", err)
		}
	}

	existing.ImageURL = c.files.URL(existing.Image)
	return existing, nil
}

// Delete removes a post, decrements its category's count, and removes
// its image file if one is attached.
func (c *Catalog) Delete(id uuid.UUID) error {
	existing, err := c.posts.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("post not found")
	}

	if err := c.posts.Delete(id); err != nil {
		return err
	}

	if err := c.categories.AdjustPostCount(existing.Category, -1); err != nil {
		slog.Error("post count decrement failed", "category", existing.Category, "error", err)
	}
	if err := c.files.Delete(existing.Image); err != nil {
		slog.Warn("image delete failed", "error", err)
	}
	return nil
}

// SetStatus changes a post's display status tag.
func (c *Catalog) SetStatus(id uuid.UUID, status string) error {
	tag := models.PostStatus(status)
	if !tag.Valid() {
		return validation("a valid status is required")
	}

	existing, err := c.posts.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("post not found")
	}

	return c.posts.UpdateStatus(id, tag)
}

// ListByCategory returns up to limit published posts in the named
// category, annotated with image URLs.
func (c *Catalog) ListByCategory(category string, limit int) ([]models.Post, error) {
	if limit < 1 {
		limit = defaultLimit
	}
	posts, err := c.posts.ListPublishedByCategory(category, limit)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ImageURL = c.files.URL(posts[i].Image)
	}
	return posts, nil
}
