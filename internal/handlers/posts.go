// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/cache"
	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

// maxFormSize caps multipart bodies: the image ceiling plus headroom
// for the text fields.
const maxFormSize = upload.MaxFileSize + 1<<20

// Posts groups the timeline post handlers. lists may be nil when no
// Valkey is configured; caching then simply disappears.
type Posts struct {
	catalog *timeline.Catalog
	uploads *upload.Store
	lists   *cache.ListCache
}

// NewPosts creates the post handler group.
func NewPosts(catalog *timeline.Catalog, uploads *upload.Store, lists *cache.ListCache) *Posts {
	return &Posts{catalog: catalog, uploads: uploads, lists: lists}
}

// postFilter builds the store filter from list query parameters.
func postFilter(r *http.Request) store.PostFilter {
	q := r.URL.Query()
	return store.PostFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		Year:     queryYear(r),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}
}

// parseUploadForm parses a multipart body capped at maxFormSize and
// answers the request itself on failure. An oversize body gets the
// upload size message; anything else malformed gets a generic one.
func parseUploadForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeDomainError(w, upload.ErrTooLarge)
		} else {
			writeMessage(w, http.StatusBadRequest, false, "Invalid form data")
		}
		return false
	}
	return true
}

// formImage saves an uploaded "image" form file if one is present and
// returns its stored filename. A missing file is not an error.
func formImage(r *http.Request, uploads *upload.Store) (*string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name, err := uploads.Save(file, header)
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// discardImage best-effort removes a file saved for a request whose
// record mutation failed, so rejected submissions do not leak files.
func discardImage(uploads *upload.Store, filename *string) {
	if filename != nil {
		uploads.Delete(filename)
	}
}

// List returns a filtered, paginated post listing. Responses are served
// from the list cache when possible.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	if body, ok := h.lists.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	page, err := h.catalog.List(postFilter(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if page.Posts == nil {
		page.Posts = []models.Post{}
	}

	payload := map[string]any{
		"success":    true,
		"total":      page.Total,
		"page":       page.Page,
		"totalPages": page.TotalPages,
		"posts":      page.Posts,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.lists.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Get returns a single post by id.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid post id")
		return
	}

	post, err := h.catalog.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"post":    post,
	})
}

// postInput builds the service input from multipart form fields.
func postInput(r *http.Request, image *string) timeline.PostInput {
	return timeline.PostInput{
		Title:       r.FormValue("title"),
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		Year:        r.FormValue("year"),
		Status:      r.FormValue("status"),
		Image:       image,
	}
}

// Create adds a timeline post from a multipart form with an optional image.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	if !parseUploadForm(w, r) {
		return
	}

	image, err := formImage(r, h.uploads)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	post, err := h.catalog.Create(postInput(r, image))
	if err != nil {
		discardImage(h.uploads, image)
		writeDomainError(w, err)
		return
	}
	h.lists.Invalidate(r.Context())

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Timeline post created successfully",
		"postId":  post.ID,
		"post":    post,
	})
}

// Update edits a timeline post, optionally replacing its image.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid post id")
		return
	}

	if !parseUploadForm(w, r) {
		return
	}

	image, err := formImage(r, h.uploads)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	post, err := h.catalog.Update(id, postInput(r, image))
	if err != nil {
		discardImage(h.uploads, image)
		writeDomainError(w, err)
		return
	}
	h.lists.Invalidate(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Post updated successfully",
		"post":    post,
	})
}

// Delete removes a post, its category count contribution, and its image.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid post id")
		return
	}

	if err := h.catalog.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.lists.Invalidate(r.Context())

	writeMessage(w, http.StatusOK, true, "Post deleted successfully")
}

// SetStatus patches only the display status tag of a post.
func (h *Posts) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid post id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if err := h.catalog.SetStatus(id, body.Status); err != nil {
		writeDomainError(w, err)
		return
	}
	h.lists.Invalidate(r.Context())

	writeMessage(w, http.StatusOK, true, "Post status updated successfully")
}

// ListByCategory returns published posts in one category, capped at the
// limit query parameter.
func (h *Posts) ListByCategory(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	if body, ok := h.lists.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	category := chi.URLParam(r, "category")
	posts, err := h.catalog.ListByCategory(category, queryInt(r, "limit", 10))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	payload := map[string]any{
		"success": true,
		"posts":   posts,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.lists.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
