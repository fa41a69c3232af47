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

// RequestFilter narrows post request listings. Zero values mean "no filter".
type RequestFilter struct {
	Status string
	Search string
	Year   *int
	Page   int
	Limit  int
}

// where builds the WHERE clause and argument list for the filter.
func (f RequestFilter) where() (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
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

// RequestStore manages timeline post requests in the database.
type RequestStore struct {
	db *sql.DB
}

// NewRequestStore returns a new RequestStore.
func NewRequestStore(db *sql.DB) *RequestStore {
	return &RequestStore{db: db}
}

const requestColumns = `id, title, date, description, category, location, year,
	submitted_by, email, phone, status, image, reviewed_by, reviewed_at,
	review_notes, created_at, updated_at`

// scanRequest scans a row into a PostRequest struct.
func scanRequest(scanner interface{ Scan(...any) error }) (*models.PostRequest, error) {
	var r models.PostRequest
	err := scanner.Scan(
		&r.ID, &r.Title, &r.Date, &r.Description, &r.Category, &r.Location,
		&r.Year, &r.SubmittedBy, &r.Email, &r.Phone, &r.Status, &r.Image,
		&r.ReviewedBy, &r.ReviewedAt, &r.ReviewNotes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns the filtered page of requests, newest first.
func (s *RequestStore) List(f RequestFilter) ([]models.PostRequest, error) {
	where, args := f.where()
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM timeline_post_requests%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, requestColumns, where, len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var items []models.PostRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Count returns the number of requests matching the filter.
func (s *RequestStore) Count(f RequestFilter) (int, error) {
	where, args := f.where()
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM timeline_post_requests`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}

// FindByID retrieves a request by ID. Returns nil if not found.
func (s *RequestStore) FindByID(id uuid.UUID) (*models.PostRequest, error) {
	row := s.db.QueryRow(`SELECT `+requestColumns+` FROM timeline_post_requests WHERE id = $1`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find request by id: %w", err)
	}
	return r, nil
}

// Create inserts a new pending request and returns it.
func (s *RequestStore) Create(r *models.PostRequest) (*models.PostRequest, error) {
	row := s.db.QueryRow(`
		INSERT INTO timeline_post_requests (title, date, description, category,
			location, year, submitted_by, email, phone, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+requestColumns,
		r.Title, r.Date, r.Description, r.Category, r.Location,
		r.Year, r.SubmittedBy, r.Email, r.Phone, r.Image,
	)
	created, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return created, nil
}

// MarkReviewed records the review decision on a request.
func (s *RequestStore) MarkReviewed(id uuid.UUID, status models.RequestStatus, notes, reviewer string) error {
	_, err := s.db.Exec(`
		UPDATE timeline_post_requests SET
			status = $1, review_notes = $2, reviewed_by = $3,
			reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4
	`, status, notes, reviewer, id)
	if err != nil {
		return fmt.Errorf("mark request reviewed: %w", err)
	}
	return nil
}

// Delete removes a request by ID.
func (s *RequestStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM timeline_post_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

// CountByStatus returns the live number of requests in the given status.
func (s *RequestStore) CountByStatus(status models.RequestStatus) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM timeline_post_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count requests by status: %w", err)
	}
	return count, nil
}
