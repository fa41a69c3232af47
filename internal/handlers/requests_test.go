// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/cache"
	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

// Minimal in-memory stores behind the timeline service interfaces, just
// enough for the submit-approve-list flow.

type memCategories struct{ items []models.Category }

func (m *memCategories) List() ([]models.Category, error) { return m.items, nil }
func (m *memCategories) FindByID(id uuid.UUID) (*models.Category, error) {
	for _, c := range m.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memCategories) FindByName(name string) (*models.Category, error) {
	for _, c := range m.items {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memCategories) FindByNameExcluding(name string, id uuid.UUID) (*models.Category, error) {
	for _, c := range m.items {
		if c.Name == name && c.ID != id {
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memCategories) Create(name, color string) (*models.Category, error) {
	c := models.Category{ID: uuid.New(), Name: name, Color: color}
	m.items = append(m.items, c)
	return &c, nil
}
func (m *memCategories) Update(*models.Category) error { return nil }
func (m *memCategories) Delete(uuid.UUID) error { return nil }
func (m *memCategories) AdjustPostCount(string, int) error { return nil }

type memPosts struct{ items []models.Post }

func (m *memPosts) List(f store.PostFilter) ([]models.Post, error) {
	if (f.Page-1)*f.Limit >= len(m.items) {
		return nil, nil
	}
	return m.items, nil
}
func (m *memPosts) Count(store.PostFilter) (int, error) { return len(m.items), nil }
func (m *memPosts) FindByID(id uuid.UUID) (*models.Post, error) {
	for _, p := range m.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}
func (m *memPosts) FindByTitleDate(title, date string) (*models.Post, error) {
	for _, p := range m.items {
		if p.Title == title && p.Date == date {
			return &p, nil
		}
	}
	return nil, nil
}
func (m *memPosts) FindByTitleDateExcluding(title, date string, id uuid.UUID) (*models.Post, error) {
	for _, p := range m.items {
		if p.Title == title && p.Date == date && p.ID != id {
			return &p, nil
		}
	}
	return nil, nil
}
func (m *memPosts) Create(p *models.Post) (*models.Post, error) {
	cp := *p
	cp.ID = uuid.New()
	m.items = append(m.items, cp)
	return &cp, nil
}
func (m *memPosts) Update(*models.Post) error { return nil }
func (m *memPosts) UpdateStatus(uuid.UUID, models.PostStatus) error { return nil }
func (m *memPosts) Delete(uuid.UUID) error { return nil }
func (m *memPosts) ListPublishedByCategory(string, int) ([]models.Post, error) {
	return m.items, nil
}
func (m *memPosts) CountByCategory(string) (int, error) { return len(m.items), nil }

type memRequests struct{ items []models.PostRequest }

func (m *memRequests) List(store.RequestFilter) ([]models.PostRequest, error) { return m.items, nil }
func (m *memRequests) Count(store.RequestFilter) (int, error) { return len(m.items), nil }
func (m *memRequests) FindByID(id uuid.UUID) (*models.PostRequest, error) {
	for _, r := range m.items {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}
func (m *memRequests) Create(r *models.PostRequest) (*models.PostRequest, error) {
	cp := *r
	cp.ID = uuid.New()
	cp.Status = models.RequestStatusPending
	m.items = append(m.items, cp)
	return &cp, nil
}
func (m *memRequests) MarkReviewed(id uuid.UUID, status models.RequestStatus, notes, reviewer string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
		}
	}
	return nil
}
func (m *memRequests) Delete(uuid.UUID) error { return nil }
func (m *memRequests) CountByStatus(models.RequestStatus) (int, error) { return 0, nil }

type memFiles struct{}

func (memFiles) URL(filename *string) *string {
	if filename == nil {
		return nil
	}
	u := upload.PublicPrefix + *filename
	return &u
}
func (memFiles) Delete(*string) error { return nil }

// testListCache connects to a local Valkey, skipping when unavailable.
func testListCache(t *testing.T) *cache.ListCache {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client, err := cache.ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return cache.NewListCache(client, time.Minute)
}

func listTotal(t *testing.T, router http.Handler) int {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timeline-posts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	return body.Total
}

func TestReviewApprovalRefreshesListing(t *testing.T) {
	lists := testListCache(t)
	ctx := context.Background()
	lists.Invalidate(ctx)
	t.Cleanup(func() { lists.Invalidate(ctx) })

	categories := &memCategories{items: []models.Category{{ID: uuid.New(), Name: "Event"}}}
	posts := &memPosts{}
	requests := &memRequests{}
	files := memFiles{}

	catalog := timeline.NewCatalog(posts, categories, files)
	workflow := timeline.NewWorkflow(requests, posts, categories, files)

	router := chi.NewRouter()
	postHandlers := NewPosts(catalog, nil, lists)
	requestHandlers := NewRequests(workflow, nil, lists)
	router.Get("/api/timeline-posts", postHandlers.List)
	router.Put("/api/timeline-post-requests/{id}/status", requestHandlers.Review)

	submitted, err := workflow.Submit(timeline.SubmitInput{
		Title:       "Laboratory Inauguration",
		Date:        "2023-02-20",
		Description: "The new science lab opened.",
		Category:    "Event",
		Year:        "2023",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Warm the cache with the pre-approval listing.
	if total := listTotal(t, router); total != 0 {
		t.Fatalf("pre-approval total = %d, want 0", total)
	}

	body := bytes.NewBufferString(`{"status":"approved"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/timeline-post-requests/"+submitted.ID.String()+"/status", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("review status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The approval published a post; the cached listing must not survive.
	if total := listTotal(t, router); total != 1 {
		t.Errorf("post-approval total = %d, want 1 (stale cache?)", total)
	}
}

func TestSubmitMalformedForm(t *testing.T) {
	h := NewRequests(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/timeline-post-requests",
		strings.NewReader("this is not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] == upload.ErrTooLarge.Error() {
		t.Error("malformed body misreported as an oversize upload")
	}
	if body["message"] != "Invalid form data" {
		t.Errorf("message = %q, want generic bad-form message", body["message"])
	}
}

func TestSubmitOversizeForm(t *testing.T) {
	h := NewRequests(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/timeline-post-requests",
		bytes.NewReader(bytes.Repeat([]byte{'a'}, maxFormSize+1024)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != upload.ErrTooLarge.Error() {
		t.Errorf("message = %q, want the upload size limit message", body["message"])
	}
}
