// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the display state of a timeline post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusPending   PostStatus = "pending"
)

// Valid reports whether s is one of the three defined status tags.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusPending:
		return true
	}
	return false
}

// Post is a timeline entry, created directly by an admin or materialized
// from an approved post request. Category references a Category by name,
// not by id. The (Title, Date) pair is kept unique by pre-insert lookup.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Year        int        `json:"year"`
	Status      PostStatus `json:"status"`
	Image       *string    `json:"image"`

	// Submitter contact details, carried over when the post was created
	// from an approved request. Absent for admin-created posts.
	SubmittedBy       *string    `json:"submittedBy,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	OriginalRequestID *uuid.UUID `json:"originalRequestId,omitempty"`

	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// ImageURL is derived from Image by the file store; never persisted.
	ImageURL *string `json:"imageUrl"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
