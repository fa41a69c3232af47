// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/cache"
	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

// Requests groups the post request handlers: the public submission
// endpoint and the admin review surface. Approvals materialize posts,
// so the group carries the post list cache to invalidate; lists may be
// nil when no Valkey is configured.
type Requests struct {
	workflow *timeline.Workflow
	uploads  *upload.Store
	lists    *cache.ListCache
}

// NewRequests creates the request handler group.
func NewRequests(workflow *timeline.Workflow, uploads *upload.Store, lists *cache.ListCache) *Requests {
	return &Requests{workflow: workflow, uploads: uploads, lists: lists}
}

// requestFilter builds the store filter from list query parameters.
func requestFilter(r *http.Request) store.RequestFilter {
	q := r.URL.Query()
	return store.RequestFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Year:   queryYear(r),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
	}
}

// List returns a filtered, paginated request listing for admins.
func (h *Requests) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.workflow.List(requestFilter(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if page.Requests == nil {
		page.Requests = []models.PostRequest{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"total":      page.Total,
		"page":       page.Page,
		"totalPages": page.TotalPages,
		"requests":   page.Requests,
	})
}

// Get returns a single request by id.
func (h *Requests) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request id")
		return
	}

	req, err := h.workflow.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"request": req,
	})
}

// Submit accepts a public timeline post request from a multipart form
// with an optional image.
func (h *Requests) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseUploadForm(w, r) {
		return
	}

	image, err := formImage(r, h.uploads)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	req, err := h.workflow.Submit(timeline.SubmitInput{
		Title:       r.FormValue("title"),
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		Year:        r.FormValue("year"),
		SubmittedBy: r.FormValue("submittedBy"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Image:       image,
	})
	if err != nil {
		discardImage(h.uploads, image)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"message":   "Timeline post request submitted successfully",
		"requestId": req.ID,
		"request":   req,
	})
}

// Review applies an approve/reject decision to a pending request.
func (h *Requests) Review(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request id")
		return
	}

	var body struct {
		Status      string `json:"status"`
		ReviewNotes string `json:"reviewNotes"`
		ReviewedBy  string `json:"reviewedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if err := h.workflow.Review(id, body.Status, body.ReviewNotes, body.ReviewedBy); err != nil {
		writeDomainError(w, err)
		return
	}

	message := "Request rejected"
	if body.Status == string(models.RequestStatusApproved) {
		// Approval published a new post, so cached listings are stale.
		h.lists.Invalidate(r.Context())
		message = "Request approved"
	}
	writeMessage(w, http.StatusOK, true, message)
}

// Delete removes a request and its attached image.
func (h *Requests) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request id")
		return
	}

	if err := h.workflow.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Request deleted successfully")
}

// Stats returns live per-status request counts.
func (h *Requests) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.workflow.Stats()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}
