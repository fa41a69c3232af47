// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package upload stores submitted timeline images on local disk. Files
// are written under a single uploads directory and served statically
// from a fixed public path; records reference them by filename only.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is the upload size ceiling (5 MiB).
	MaxFileSize = 5 << 20

	// PublicPrefix is the URL path uploads are served from.
	PublicPrefix = "/uploads/timeline/"

	// filenamePrefix namespaces stored files within the uploads directory.
	filenamePrefix = "timeline_"
)

// ErrTooLarge is returned when an upload exceeds MaxFileSize.
var ErrTooLarge = errors.New("image exceeds the 5 MB size limit")

// ErrUnsupportedType is returned for anything that is not a
// jpeg/jpg/png/gif/webp image.
var ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")

// allowedExtensions are the accepted upload file extensions.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// allowedImageTypes are the accepted sniffed MIME types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store saves, serves, and deletes uploaded image files in a single
// directory on local disk.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists an uploaded file, returning the generated
// filename. The stored name is timeline_<uuid><ext>, so concurrent
// uploads of identically named files never collide. Both the file
// extension and the sniffed content type must be an accepted image type.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	// Sniff the leading bytes rather than trusting the client header.
	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !allowedImageTypes[http.DetectContentType(sniff[:n])] {
		return "", ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := filenamePrefix + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	// The declared size was already checked; cap the copy anyway in case
	// the actual stream is longer than the multipart header claimed.
	written, err := io.Copy(dst, io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(dst.Name())
		return "", ErrTooLarge
	}

	return name, nil
}

// URL derives the public path for a stored filename. Nil in, nil out.
func (s *Store) URL(filename *string) *string {
	if filename == nil || *filename == "" {
		return nil
	}
	u := PublicPrefix + *filename
	return &u
}

// Delete removes a stored file. Deleting a nil reference or an already
// missing file is a no-op, so record deletions never fail on absent images.
func (s *Store) Delete(filename *string) error {
	if filename == nil || *filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(*filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}
