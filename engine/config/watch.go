package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/mitchellh/go-homedir"
)

// Watch reloads path whenever it changes and hands the result to onChange,
// until ctx is cancelled. It watches the parent directory so editors that
// save by rename are seen too. Files that fail to load are logged and
// skipped. onChange runs on the watcher goroutine.
func Watch(ctx context.Context, path string, onChange func(*File)) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			f, err := Load(path)
			if err != nil {
				core.Logger().Warn("config reload failed", "path", path, "err", err)
				continue
			}
			core.Logger().Info("config reloaded", "path", path)
			onChange(f)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			core.Logger().Warn("config watch", "path", path, "err", err)
		}
	}
}
