package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long a watched file must stay quiet before the
// pipeline runs again.
const WatchDebounce = 100 * time.Millisecond

// Watch runs the pipeline once and then again whenever the input or label
// file changes, until ctx is done. Every run, successful or not, is passed
// to report; a failed run does not stop watching.
//
// Options are validated up front and a validation error is returned without
// running anything. Watch returns ctx.Err() when ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, opts Options, report func(*Result, error)) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	watched := make(map[string]bool)
	for _, path := range []string{opts.Input, opts.Labels} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		watched[abs] = true
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch directories, not files: editors often replace a file by renaming
	// a new one over it, which drops a watch on the file itself.
	dirs := make(map[string]bool)
	for path := range watched {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	run := func() {
		result, err := r.Execute(ctx, opts)
		report(result, err)
	}
	run()

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				r.Logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(WatchDebounce)
			}

		case <-timer.C:
			run()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are non-fatal.
			r.Logger.Warn("watch error", "err", err)
		}
	}
}
