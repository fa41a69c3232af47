// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the REST handlers for the timeline API.
// Handlers are grouped by collection (categories, posts, requests) and
// receive their dependencies through the handler struct. Every response
// is a JSON envelope with a success flag and either a payload or a
// human-readable message; internal errors never leak details.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

// writeJSON marshals the payload with a Content-Type header.
func writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeMessage writes a success/failure envelope with only a message.
func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, map[string]any{"success": success, "message": message})
}

// writeDomainError translates the domain error taxonomy into HTTP
// responses. Validation problems, conflicts, and upload rejections all
// answer 400 with the error's own message; unknown ids answer 404;
// anything else is logged and answered with a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		vErr *timeline.ValidationError
		cErr *timeline.ConflictError
		nErr *timeline.NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		writeMessage(w, http.StatusBadRequest, false, vErr.Msg)
	case errors.As(err, &cErr):
		writeMessage(w, http.StatusBadRequest, false, cErr.Msg)
	case errors.As(err, &nErr):
		writeMessage(w, http.StatusNotFound, false, nErr.Msg)
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrUnsupportedType):
		writeMessage(w, http.StatusBadRequest, false, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Something went wrong")
	}
}

// queryInt parses an integer query parameter, returning fallback when
// the parameter is absent or unparseable.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// queryYear parses the optional year filter. An unparseable year is
// treated as absent rather than rejected.
func queryYear(r *http.Request) *int {
	v := r.URL.Query().Get("year")
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
