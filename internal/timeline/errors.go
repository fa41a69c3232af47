// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package timeline

// The services in this package report failures through three typed
// errors so the HTTP layer can translate them without string matching.
// Storage errors pass through wrapped and untyped; those surface as
// internal errors at the boundary.

// ValidationError reports a missing or malformed input field, a bad enum
// value, or a reference to a category that does not exist.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a uniqueness violation: a duplicate category
// name, a duplicate (title, date) post pair, or a category still
// referenced by posts.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError reports an unknown record id.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func validation(msg string) *ValidationError { return &ValidationError{Msg: msg} }
func conflict(msg string) *ConflictError     { return &ConflictError{Msg: msg} }
func notFound(msg string) *NotFoundError     { return &NotFoundError{Msg: msg} }
