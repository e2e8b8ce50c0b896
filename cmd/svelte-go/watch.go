package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch compiles everything once, then recompiles each input as it is
// written. New files in watched directories are picked up.
func (b *build) watch() error {
	if err := b.run(); err != nil {
		fmt.Fprintf(os.Stderr, "initial build failed: %v\n", err)
	}

	files, err := b.inputs()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for _, p := range b.opts.paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs[p] = true
		}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	fmt.Printf("Watching %d director(ies) for changes\n", len(dirs))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".json") || ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if err := b.compileFile(ev.Name); err != nil {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", ev.Name, err)
				continue
			}
			fmt.Printf("Recompiled %s\n", ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-interrupt:
			return nil
		}
	}
}
