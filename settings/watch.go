// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/xrshell/base/errors"
)

// Watch calls fun with freshly loaded settings every time the given file
// is written or replaced, until ctx is done. Files that fail to load are
// logged and skipped. fun is called on the watcher goroutine, so it must
// hand the settings over to the frame loop rather than apply them directly.
func Watch(ctx context.Context, filename string, fun func(s *Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// the directory is watched, since editors often replace files by renaming
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return err
	}
	name := filepath.Clean(filename)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				s, err := Open(filename)
				if errors.Log(err) != nil {
					continue
				}
				slog.Info("settings reloaded", "file", filename)
				fun(s)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return nil
}
