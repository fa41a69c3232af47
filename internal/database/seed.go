// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed inserts starter categories when the table is empty. Intended for
// development so a fresh database has something to submit against.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM timeline_categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name  string
		color string
	}{
		{"Milestone", "bg-blue-100 text-blue-800"},
		{"Event", "bg-green-100 text-green-800"},
		{"Achievement", "bg-amber-100 text-amber-800"},
	}

	for _, c := range seed {
		_, err := db.Exec(
			`INSERT INTO timeline_categories (name, color) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			c.name, c.color,
		)
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", c.name, err)
		}
	}

	slog.Info("seeded starter categories", "count", len(seed))
	return nil
}
