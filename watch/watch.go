// Package watch reports edits to map, scenario and script files.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce drops repeat events for the same file within this window.
const Debounce = 100 * time.Millisecond

// Watcher delivers the paths of changed files on Events. Both channels are
// closed after Close returns.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New watches each of dirs (non-recursively).
func New(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Drain collects, without blocking, the distinct paths and errors reported
// since the previous call. open is false once the watcher has shut down.
func (w *Watcher) Drain() (paths []string, errs []error, open bool) {
	seen := make(map[string]bool)
	for {
		select {
		case p, ok := <-w.Events:
			if !ok {
				return paths, errs, false
			}
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return paths, errs, false
			}
			errs = append(errs, err)
		default:
			return paths, errs, true
		}
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !Relevant(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Relevant reports whether path is a map, scenario or script file.
func Relevant(path string) bool {
	return IsMap(path) || IsScenario(path) || IsScript(path)
}

func IsMap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

func IsScenario(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
