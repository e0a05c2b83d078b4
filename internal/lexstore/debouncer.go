package lexstore

import (
	"slices"
	"sync"
	"time"
)

// debouncer collects changed paths and flushes them once no change has
// arrived for the window.
type debouncer struct {
	window  time.Duration
	paths   map[string]bool
	mu      sync.Mutex
	timer   *time.Timer
	onFlush func([]string)
	stopped bool
}

func newDebouncer(window time.Duration, onFlush func([]string)) *debouncer {
	return &debouncer{
		window:  window,
		paths:   make(map[string]bool),
		onFlush: onFlush,
	}
}

func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.paths[path] = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.paths))
	for p := range d.paths {
		paths = append(paths, p)
	}
	d.paths = make(map[string]bool)
	d.timer = nil
	d.mu.Unlock()

	if len(paths) > 0 && d.onFlush != nil {
		slices.Sort(paths)
		d.onFlush(paths)
	}
}

// stop cancels the pending flush and delivers what was collected.
func (d *debouncer) stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.flush()
}
