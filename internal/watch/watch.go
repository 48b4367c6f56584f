// Package watch calls back when a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 300 * time.Millisecond

// File watches a single file. The parent directory is watched so that
// editors replacing the file by rename are still seen.
type File struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.Logger
}

func New(path string, debounce time.Duration, log *zap.Logger) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &File{path: abs, debounce: debounce, watcher: w, log: log}, nil
}

// Run blocks until ctx is done, calling onChange once per burst of writes.
// The watcher is closed on return.
func (f *File) Run(ctx context.Context, onChange func()) error {
	defer f.watcher.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			f.log.Debug("file event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			fire = time.After(f.debounce)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
