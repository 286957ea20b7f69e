// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/internal/normalize"
	"github.com/pdiddy/grade-report/pkg/types"
)

// WatchOptions tunes Watch. Zero values use the defaults.
type WatchOptions struct {
	// Debounce is how long to wait after the last change before reloading
	// (default 250ms).
	Debounce time.Duration

	// Attempts is how many times a reload is tried while the file may still
	// be half-written (default 3).
	Attempts uint

	// Delay is the wait between reload attempts (default 200ms).
	Delay time.Duration
}

func (o WatchOptions) withDefaults() WatchOptions {
	if o.Debounce <= 0 {
		o.Debounce = 250 * time.Millisecond
	}
	if o.Attempts == 0 {
		o.Attempts = 3
	}
	if o.Delay <= 0 {
		o.Delay = 200 * time.Millisecond
	}
	return o
}

// Watch loads the document at path, calls fn with the result, and calls fn
// again each time the file changes, until ctx is cancelled. A failed load
// is passed to fn as an error and watching continues.
//
// The containing directory is watched so that editors and exporters that
// replace the file instead of writing it in place are seen.
func Watch(ctx context.Context, path string, cfg types.Config, logger *slog.Logger, opts WatchOptions, fn func(*dataset.Dataset, error)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = opts.withDefaults()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	fn(reload(ctx, target, cfg, logger, opts))

	debounce := time.NewTimer(opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("document changed", "path", target, "op", ev.Op.String())
			debounce.Reset(opts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-debounce.C:
			ds, err := reload(ctx, target, cfg, logger, opts)
			if ctx.Err() != nil {
				return nil
			}
			fn(ds, err)
		}
	}
}

// reload retries Load while the document may be mid-write. Unknown grade
// modifiers are not retried since rereading cannot fix them.
func reload(ctx context.Context, path string, cfg types.Config, logger *slog.Logger, opts WatchOptions) (*dataset.Dataset, error) {
	var ds *dataset.Dataset
	err := retry.Do(
		func() error {
			var err error
			ds, err = Load(ctx, path, cfg, logger)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, normalize.ErrUnknownModifier)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("reload failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return ds, nil
}
