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

// DefaultReviewer is recorded when a review decision arrives without a
// reviewer name.
const DefaultReviewer = "admin"

// SubmitInput carries the fields of a public post request submission.
// Year is the raw form value; anything unparseable becomes 0 rather
// than rejecting the submission.
type SubmitInput struct {
	Title       string
	Date        string
	Description string
	Category    string
	Location    string
	Year        string
	SubmittedBy string
	Email       string
	Phone       string

	// Image is the stored filename of the uploaded file, or nil.
	Image *string
}

// RequestPage is one page of a filtered request listing.
type RequestPage struct {
	Requests   []models.PostRequest
	Total      int
	Page       int
	TotalPages int
}

// RequestStats are live recounts of requests per review status.
type RequestStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// Workflow drives post requests from public submission through admin
// review. Approval is the one cross-collection sequence in the system:
// validate category, check for a duplicate post, create the post,
// increment the category count, then mark the request approved. Each
// step commits independently; a failed check before the post insert
// leaves the request pending and nothing else written.
type Workflow struct {
	requests   RequestStore
	posts      PostStore
	categories CategoryStore
	files      FileStore
}

// NewWorkflow returns a Workflow backed by the given stores.
func NewWorkflow(requests RequestStore, posts PostStore, categories CategoryStore, files FileStore) *Workflow {
	return &Workflow{requests: requests, posts: posts, categories: categories, files: files}
}

// List returns a filtered, paginated page of requests, newest first,
// annotated with derived image URLs.
func (w *Workflow) List(f store.RequestFilter) (*RequestPage, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	total, err := w.requests.Count(f)
	if err != nil {
		return nil, err
	}
	requests, err := w.requests.List(f)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].ImageURL = w.files.URL(requests[i].Image)
	}

	return &RequestPage{
		Requests:   requests,
		Total:      total,
		Page:       f.Page,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// Get returns a single request with its derived image URL.
func (w *Workflow) Get(id uuid.UUID) (*models.PostRequest, error) {
	req, err := w.requests.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, notFound("request not found")
	}
	req.ImageURL = w.files.URL(req.Image)
	return req, nil
}

// Submit validates and persists a public submission as a pending
// request. The referenced category must exist; the year is lenient and
// falls back to 0 when it does not parse.
func (w *Workflow) Submit(in SubmitInput) (*models.PostRequest, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" {
		return nil, validation("title is required")
	}
	if in.Date == "" {
		return nil, validation("date is required")
	}
	if in.Description == "" {
		return nil, validation("description is required")
	}
	if in.Category == "" {
		return nil, validation("category is required")
	}

	year := 0
	if y, err := strconv.Atoi(strings.TrimSpace(in.Year)); err == nil {
		year = y
	}

	cat, err := w.categories.FindByName(in.Category)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, validation("category not found")
	}

	submittedBy := strings.TrimSpace(in.SubmittedBy)
	if submittedBy == "" {
		submittedBy = models.DefaultSubmitter
	}

	created, err := w.requests.Create(&models.PostRequest{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		Category:    in.Category,
		Location:    strings.TrimSpace(in.Location),
		Year:        year,
		SubmittedBy: submittedBy,
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Image:       in.Image,
	})
	if err != nil {
		return nil, err
	}
	created.ImageURL = w.files.URL(created.Image)
	return created, nil
}

// Review records an approve/reject decision. On approval it first
// re-validates the category and the (title, date) uniqueness; only when
// both checks pass does it materialize the post, bump the category
// count, and mark the request approved — so a failed approval leaves
// the request pending. Rejection only records the review.
func (w *Workflow) Review(id uuid.UUID, decision, notes, reviewer string) error {
	status := models.RequestStatus(decision)
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return validation("decision must be approved or rejected")
	}

	req, err := w.requests.FindByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return notFound("request not found")
	}

	if reviewer = strings.TrimSpace(reviewer); reviewer == "" {
		reviewer = DefaultReviewer
	}

	if status == models.RequestStatusApproved {
		if err := w.approve(req); err != nil {
			return err
		}
	}

	return w.requests.MarkReviewed(id, status, notes, reviewer)
}

// approve materializes a post from the request. Re-running it against
// an already-approved request trips the duplicate (title, date) check,
// so a second post is never created.
func (w *Workflow) approve(req *models.PostRequest) error {
	cat, err := w.categories.FindByName(req.Category)
	if err != nil {
		return err
	}
	if cat == nil {
		return validation("category not found")
	}

	dup, err := w.posts.FindByTitleDate(req.Title, req.Date)
	if err != nil {
		return err
	}
	if dup != nil {
		return conflict("a post with this title and date already exists")
	}

	_, err = w.posts.Create(&models.Post{
		Title:             req.Title,
		Date:              req.Date,
		Description:       req.Description,
		Category:          req.Category,
		Location:          req.Location,
		Year:              req.Year,
		Status:            models.PostStatusPublished,
		Image:             req.Image,
		SubmittedBy:       &req.SubmittedBy,
		Email:             &req.Email,
		Phone:             &req.Phone,
		OriginalRequestID: &req.ID,
	})
	if err != nil {
		return err
	}

	if err := w.categories.AdjustPostCount(req.Category, 1); err != nil {
		slog.Error("post count increment failed", "category", req.Category, "error", err)
	}
	return nil
}

// Delete removes a request and its attached image file. The record
// deletion is primary; a file deletion failure is logged, not returned.
func (w *Workflow) Delete(id uuid.UUID) error {
	req, err := w.requests.FindByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return notFound("request not found")
	}

	if err := w.requests.Delete(id); err != nil {
		return err
	}

	if err := w.files.Delete(req.Image); err != nil {
		slog.Warn("request image delete failed", "error", err)
	}
	return nil
}

// Stats recounts requests per status. These are live counts, so they
// cannot drift the way the cached category counters can.
func (w *Workflow) Stats() (*RequestStats, error) {
	pending, err := w.requests.CountByStatus(models.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := w.requests.CountByStatus(models.RequestStatusApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := w.requests.CountByStatus(models.RequestStatusRejected)
	if err != nil {
		return nil, err
	}

	return &RequestStats{
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
		Total:    pending + approved + rejected,
	}, nil
}
