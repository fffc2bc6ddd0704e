package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/latgraph/pkg/io"
)

// FileCache keeps each plot as a JSON document under dir, sharded by the
// first two hex digits of the hashed key. Entries are written atomically, so
// concurrent CLI runs never read a partial plot.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens the plot cache in dir, creating the directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("plot cache %s: %w", dir, err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

type plotEntry struct {
	Format    string    `json:"format"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Get returns the plot stored under key. Entries that are expired, cannot be
// decoded, or fail [Plot.Validate] are removed and reported as a miss.
func (c *FileCache) Get(_ context.Context, key string) (Plot, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Plot{}, false, nil
	}
	if err != nil {
		return Plot{}, false, fmt.Errorf("read plot cache: %w", err)
	}

	var e plotEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return Plot{}, false, nil
	}
	if !e.ExpiresAt.IsZero() && c.now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return Plot{}, false, nil
	}
	p := Plot{Format: e.Format, Data: e.Data}
	if p.Validate() != nil {
		_ = os.Remove(path)
		return Plot{}, false, nil
	}
	return p, true, nil
}

// Set validates p and stores it under key.
func (c *FileCache) Set(_ context.Context, key string, p Plot, ttl time.Duration) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e := plotEntry{Format: p.Format, Data: p.Data, StoredAt: c.now()}
	if ttl > 0 {
		e.ExpiresAt = e.StoredAt.Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("plot cache: %w", err)
	}
	return io.WriteBytes(path, raw)
}

// Delete removes the plot stored under key.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".plot.json")
}

var _ Cache = (*FileCache)(nil)
