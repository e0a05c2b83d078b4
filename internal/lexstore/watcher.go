package lexstore

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cours-de-latin/nlg/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-imports lexicon files into a store when they change under a
// directory. Removed files have their entries deleted.
type Watcher struct {
	store    *Store
	dir      string
	patterns []string
	fsw      *fsnotify.Watcher
	deb      *debouncer
	log      *slog.Logger

	// OnReload, when set, is called after each batch with the relative
	// paths that were re-imported or removed.
	OnReload func(paths []string)

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewWatcher watches dir for files matching patterns, which are relative
// to dir.
func NewWatcher(store *Store, dir string, patterns []string, window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:    store,
		dir:      dir,
		patterns: patterns,
		fsw:      fsw,
		log:      logger.ForComponent("watcher"),
	}
	w.deb = newDebouncer(window, w.reload)
	return w, nil
}

// Start watches dir and its subdirectories until ctx is done or Close is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.handleEvents(ctx)
	w.log.Info("watching lexicons", "dir", w.dir, "patterns", w.patterns)
	return nil
}

func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	err := w.fsw.Close()
	w.wg.Wait()
	w.deb.stop()
	return err
}

// matches reports whether the relative path is a watched lexicon file.
func (w *Watcher) matches(rel string) bool {
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvents(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Debug("watch directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			rel, err := filepath.Rel(w.dir, event.Name)
			if err != nil || !w.matches(rel) {
				continue
			}
			w.log.Debug("lexicon event", "path", rel, "op", event.Op.String())
			w.deb.add(filepath.ToSlash(rel))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// reload re-imports the changed files of a batch.
func (w *Watcher) reload(paths []string) {
	ctx := context.Background()
	fsys := os.DirFS(w.dir)
	for _, p := range paths {
		n, err := w.store.ImportPath(ctx, fsys, p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			removed, rerr := w.store.RemoveSource(ctx, p)
			if rerr != nil {
				w.log.Error("remove lexicon", "path", p, "error", rerr)
				continue
			}
			w.log.Info("lexicon removed", "path", p, "words", removed)
		case err != nil:
			w.log.Error("reload lexicon", "path", p, "error", err)
		default:
			w.log.Info("lexicon reloaded", "path", p, "words", n)
		}
	}
	if w.OnReload != nil {
		w.OnReload(paths)
	}
}
