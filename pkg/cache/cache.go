// Package cache stores rendered plots so that unchanged lattices are not
// laid out by Graphviz again.
//
// Entries are [Plot] values addressed by [PlotKey], a hash of the DOT source
// together with the output format and raster scale. The CLI uses a
// [FileCache] under the user cache directory; library callers that do not
// want caching use [NewNullCache].
//
//	c, err := cache.NewFileCache(cache.DefaultDir())
//	key := cache.PlotKey(dot, render.FormatSVG, 1)
//	if p, ok, _ := c.Get(ctx, key); ok && p.Format == render.FormatSVG {
//	    return p.Data, nil
//	}
package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/render"
)

// Plot is a rendered image.
type Plot struct {
	Format string // render.FormatSVG, render.FormatPDF or render.FormatPNG
	Data   []byte
}

var (
	pdfMagic = []byte("%PDF-")
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
)

// Validate checks that Format is a plot format and that Data starts like an
// image of that format.
func (p Plot) Validate() error {
	if len(p.Data) == 0 {
		return errors.Malformed("empty %s plot", p.Format)
	}
	var ok bool
	switch p.Format {
	case render.FormatSVG:
		ok = bytes.Contains(p.Data, []byte("<svg"))
	case render.FormatPDF:
		ok = bytes.HasPrefix(p.Data, pdfMagic)
	case render.FormatPNG:
		ok = bytes.HasPrefix(p.Data, pngMagic)
	default:
		return errors.Unsupported("unsupported plot format %q", p.Format)
	}
	if !ok {
		return errors.Malformed("data is not a %s image", p.Format)
	}
	return nil
}

// Cache is a plot store with optional expiry.
type Cache interface {
	// Get returns the plot stored under key. A missing, expired or invalid
	// entry is a miss, not an error.
	Get(ctx context.Context, key string) (Plot, bool, error)

	// Set stores p under key after validating it. A ttl of zero means no
	// expiry.
	Set(ctx context.Context, key string, p Plot, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultDir returns the directory used for the CLI's plot cache, falling
// back to the system temp directory when no user cache directory exists.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "latgraph", "plots")
}
