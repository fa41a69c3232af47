// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
)

// PostFilter narrows post listings. Zero values mean "no filter".
// Search matches title, description, and location case-insensitively.
type PostFilter struct {
	Category string
	Status   string
	Search   string
	Year     *int
	Page     int
	Limit    int
}

// where builds the WHERE clause and argument list for the filter.
func (f PostFilter) where() (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Year != nil {
		add("year = $%d", *f.Year)
	}
	if f.Search != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d OR location ILIKE $%[1]d)", "%"+f.Search+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// PostStore manages timeline posts in the database.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, date, description, category, location, year, status,
	image, submitted_by, email, phone, original_request_id, views, likes,
	created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Date, &p.Description, &p.Category, &p.Location,
		&p.Year, &p.Status, &p.Image, &p.SubmittedBy, &p.Email, &p.Phone,
		&p.OriginalRequestID, &p.Views, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the filtered page of posts, ordered by year descending
// then creation time descending. The two-key sort keeps offset
// pagination deterministic.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	where, args := f.where()
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM timeline_posts%s
		ORDER BY year DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the number of posts matching the filter.
func (s *PostStore) Count(f PostFilter) (int, error) {
	where, args := f.where()
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM timeline_posts`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM timeline_posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindByTitleDate retrieves a post with the given title and date pair.
// Returns nil if not found. The pair uniqueness is enforced here by
// lookup, not by a storage constraint.
func (s *PostStore) FindByTitleDate(title, date string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM timeline_posts
		WHERE title = $1 AND date = $2
		LIMIT 1
	`, title, date)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by title and date: %w", err)
	}
	return p, nil
}

// FindByTitleDateExcluding is FindByTitleDate minus the given id. Used
// for duplicate checks during updates.
func (s *PostStore) FindByTitleDateExcluding(title, date string, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM timeline_posts
		WHERE title = $1 AND date = $2 AND id <> $3
		LIMIT 1
	`, title, date, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by title and date excluding: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with generated fields.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO timeline_posts (title, date, description, category, location,
			year, status, image, submitted_by, email, phone, original_request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+postColumns,
		p.Title, p.Date, p.Description, p.Category, p.Location,
		p.Year, p.Status, p.Image, p.SubmittedBy, p.Email, p.Phone, p.OriginalRequestID,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// Update modifies an existing post's editable fields.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE timeline_posts SET
			title = $1, date = $2, description = $3, category = $4,
			location = $5, year = $6, status = $7, image = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Date, p.Description, p.Category, p.Location, p.Year, p.Status, p.Image, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status tag of a post.
func (s *PostStore) UpdateStatus(id uuid.UUID, status models.PostStatus) error {
	_, err := s.db.Exec(`
		UPDATE timeline_posts SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update post status: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM timeline_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ListPublishedByCategory returns up to limit published posts in the
// named category, ordered by year descending then creation descending.
func (s *PostStore) ListPublishedByCategory(category string, limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM timeline_posts
		WHERE category = $1 AND status = $2
		ORDER BY year DESC, created_at DESC
		LIMIT $3
	`, category, models.PostStatusPublished, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CountByCategory returns the live number of posts referencing the named
// category. Category deletion guards use this recount rather than the
// cached post_count column.
func (s *PostStore) CountByCategory(category string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM timeline_posts WHERE category = $1`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by category: %w", err)
	}
	return count, nil
}
