// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/osman-server/internal/models"
	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
)

// Categories groups the category admin handlers.
type Categories struct {
	registry *timeline.Registry
}

// NewCategories creates the category handler group.
func NewCategories(registry *timeline.Registry) *Categories {
	return &Categories{registry: registry}
}

// categoryBody is the JSON request body for create and update.
type categoryBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// List returns all categories, newest first.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.registry.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// Create adds a new category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	category, err := h.registry.Create(body.Name, body.Color)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Category created successfully",
		"category": category,
	})
}

// Update renames a category and optionally changes its color.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid category id")
		return
	}

	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	category, err := h.registry.Update(id, body.Name, body.Color)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Category updated successfully",
		"category": category,
	})
}

// Delete removes a category that no post references.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid category id")
		return
	}

	if err := h.registry.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Category deleted successfully")
}
