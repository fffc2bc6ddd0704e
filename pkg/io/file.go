package io

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// ReadFile reads the lattice at path, choosing the codec from the extension.
// An unknown extension fails with UNSUPPORTED_FORMAT before the file is opened.
func ReadFile(path string) (*lattice.Lattice, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	c, err := CodecFor(f)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	l, err := c.Decode(bufio.NewReader(fh))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l, nil
}

// WriteFile writes l to path, choosing the codec from the extension.
//
// The lattice is encoded in memory first and then written to a temporary
// file in the target directory, which is renamed over path only after a
// successful write. On any error path is neither created nor modified.
func WriteFile(path string, l *lattice.Lattice) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(l, f)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	st, err := Stage(path, data)
	if err != nil {
		return err
	}
	defer st.Discard()
	return st.Commit()
}

// Staged is data written to a temporary file next to its target path and
// not yet visible under that path.
//
// Staging every output before committing any of them lets a caller write
// several files with all-or-nothing semantics up to the final renames.
type Staged struct {
	path string
	tmp  string
	done bool
}

// Stage writes data to a temporary file in the directory of path. Nothing
// is left behind on error.
func Stage(path string, data []byte) (_ *Staged, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = bytes.NewReader(data).WriteTo(tmp); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	return &Staged{path: path, tmp: tmp.Name()}, nil
}

// Path returns the target path.
func (s *Staged) Path() string { return s.path }

// Commit renames the temporary file over the target path.
func (s *Staged) Commit() error {
	if s.done {
		return fmt.Errorf("commit %s: already committed or discarded", s.path)
	}
	if err := os.Rename(s.tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", s.path, err)
	}
	s.done = true
	return nil
}

// Discard removes the temporary file. It does nothing after Commit and may
// be called more than once.
func (s *Staged) Discard() {
	if s.done {
		return
	}
	os.Remove(s.tmp)
	s.done = true
}

// WriteBytes atomically writes data to path. It is used for artifacts such
// as plots that share the no-partial-output guarantee of [WriteFile].
func WriteBytes(path string, data []byte) error {
	return writeAtomic(path, data)
}
