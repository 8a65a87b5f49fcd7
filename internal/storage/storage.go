// Package storage keeps uploaded driver documents on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrOutsideRoot = errors.New("path outside storage root")
	ErrNotExist    = errors.New("object does not exist")
)

// Object is an open stored file. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

type Store interface {
	Open(ctx context.Context, key string) (*Object, error)
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// ContentType maps a file extension to its MIME type, defaulting to
// application/octet-stream.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsAllowedExt reports whether uploads with this file name are accepted.
func IsAllowedExt(name string) bool {
	_, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// CleanKey normalizes a slash-separated object key. Keys that resolve above
// the storage root fail with ErrOutsideRoot; the root itself with
// ErrNotExist.
func CleanKey(raw string) (string, error) {
	raw = strings.ReplaceAll(raw, "\\", "/")
	key := path.Clean(strings.TrimLeft(raw, "/"))
	switch {
	case key == "..", strings.HasPrefix(key, "../"):
		return "", ErrOutsideRoot
	case key == ".", key == "":
		return "", ErrNotExist
	}
	return key, nil
}
