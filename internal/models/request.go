// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the review state of a post request.
// The only modeled transitions are pending -> approved and
// pending -> rejected.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// DefaultSubmitter is recorded when a public submission carries no name.
const DefaultSubmitter = "Anonymous"

// PostRequest is a public submission awaiting admin review. Approval
// materializes a Post from its fields; rejection only records the review.
type PostRequest struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Location    string        `json:"location"`
	Year        int           `json:"year"`
	SubmittedBy string        `json:"submittedBy"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Status      RequestStatus `json:"status"`
	Image       *string       `json:"image"`
	ReviewedBy  *string       `json:"reviewedBy"`
	ReviewedAt  *time.Time    `json:"reviewedAt"`
	ReviewNotes string        `json:"reviewNotes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// ImageURL is derived from Image by the file store; never persisted.
	ImageURL *string `json:"imageUrl"`
}
