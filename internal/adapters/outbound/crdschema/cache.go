package crdschema

import (
	"os"
	"path/filepath"
	"time"
)

const cacheMaxAge = 24 * time.Hour

// Cache is a file-based cache for the fetched CRD document, shared across
// runs so the schema is not re-downloaded for every log file.
type Cache struct {
	dir string
}

// NewCache places the cache under the user cache directory. Returns nil
// when no cache directory is available; callers treat a nil cache as
// disabled.
func NewCache() *Cache {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil
	}
	return &Cache{dir: filepath.Join(base, "ecfix")}
}

// NewCacheAt places the cache in an explicit directory.
func NewCacheAt(dir string) *Cache {
	return &Cache{dir: dir}
}

// Load returns the cached document if it is fresh enough. A stale or
// missing cache is not an error.
func (c *Cache) Load() ([]byte, bool) {
	path := c.path()
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > cacheMaxAge {
		return nil, false
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// Save writes the document to the cache, creating directories as needed.
func (c *Cache) Save(doc []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.path(), doc, 0644)
}

// Invalidate removes the cached document.
func (c *Cache) Invalidate() error {
	if err := os.Remove(c.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, "crd-schema.yaml")
}
