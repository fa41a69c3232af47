// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         &timeline.ValidationError{Msg: "title is required"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "title is required",
		},
		{
			name:        "conflict",
			err:         &timeline.ConflictError{Msg: "a category with this name already exists"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "a category with this name already exists",
		},
		{
			name:        "not found",
			err:         &timeline.NotFoundError{Msg: "post not found"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "post not found",
		},
		{
			name:        "upload too large",
			err:         upload.ErrTooLarge,
			wantStatus:  http.StatusBadRequest,
			wantMessage: upload.ErrTooLarge.Error(),
		},
		{
			name:        "upload bad type",
			err:         upload.ErrUnsupportedType,
			wantStatus:  http.StatusBadRequest,
			wantMessage: upload.ErrUnsupportedType.Error(),
		},
		{
			name:        "storage error stays generic",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeEnvelope(t, rec)
			if body["success"] != false {
				t.Error("success flag should be false")
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", body["message"], tt.wantMessage)
			}
		})
	}
}

func TestWriteDomainErrorWrapped(t *testing.T) {
	rec := httptest.NewRecorder()

	// Typed errors are recognized through wrapping too.
	err := errors.Join(errors.New("context"), &timeline.NotFoundError{Msg: "request not found"})
	writeDomainError(rec, err)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/timeline-posts?page=3&limit=abc", nil)

	if got := queryInt(r, "page", 1); got != 3 {
		t.Errorf("page = %d, want 3", got)
	}
	if got := queryInt(r, "limit", 10); got != 10 {
		t.Errorf("unparseable limit = %d, want fallback 10", got)
	}
	if got := queryInt(r, "missing", 7); got != 7 {
		t.Errorf("missing param = %d, want fallback 7", got)
	}
}

func TestQueryYear(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/timeline-posts?year=2019", nil)
	if got := queryYear(r); got == nil || *got != 2019 {
		t.Errorf("year = %v, want 2019", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/timeline-posts?year=nineteen", nil)
	if got := queryYear(r); got != nil {
		t.Errorf("unparseable year = %v, want nil", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/timeline-posts", nil)
	if got := queryYear(r); got != nil {
		t.Errorf("absent year = %v, want nil", got)
	}
}
