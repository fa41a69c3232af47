// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the display tag applied when a category is
// created without an explicit color.
const DefaultCategoryColor = "bg-gray-100 text-gray-800"

// Category is a named grouping tag for timeline posts. PostCount is a
// denormalized counter adjusted on post mutations; it is not recomputed
// on read and can drift if a count adjustment fails after the primary
// write has committed.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	PostCount int       `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
