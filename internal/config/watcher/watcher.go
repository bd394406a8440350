// Package watcher reports changes to individual files using fsnotify.
//
// Files are watched through their parent directory, so an editor that saves
// by renaming a temporary file over the original is still noticed. Bursts
// of events for one file collapse into a single event once the file has
// been quiet for the debounce period.
package watcher

import (
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotWatching   = errors.New("path is not being watched")
)

// DefaultDebounce is how long a file must be quiet before its event fires.
const DefaultDebounce = 100 * time.Millisecond

// Event describes a change to a watched file.
type Event struct {
	Path string // absolute
	Op   Operation
	Time time.Time // arrival of the last raw event
}

// Operation is the kind of change.
type Operation int

const (
	OpWrite Operation = iota
	OpCreate
	OpRemove
	OpRename
)

func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// merge folds a later operation into an earlier pending one. A write after
// a create or remove keeps the earlier operation, and a rename after a
// remove stays a remove.
func (op Operation) merge(next Operation) Operation {
	switch {
	case next == OpWrite && op != OpWrite:
		return op
	case next == OpRename && op == OpRemove:
		return op
	}
	return next
}

// Handler receives change events. Handlers run on watcher goroutines.
type Handler func(event Event)

// Watcher monitors a set of files.
type Watcher struct {
	fsw        *fsnotify.Watcher
	debounce   time.Duration
	errHandler func(error)

	mu       sync.Mutex
	files    map[string]bool
	dirs     map[string]int // watched files per directory
	handlers []Handler
	pending  map[string]*pending
	running  bool
	closed   bool
	done     chan struct{}
	wg       sync.WaitGroup
}

// pending is a debounced event waiting for its timer. seq identifies the
// newest timer so that a superseded one does nothing when it fires.
type pending struct {
	op    Operation
	at    time.Time
	seq   uint64
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every raw event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives errors reported by fsnotify.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) { w.errHandler = fn }
}

// New creates a stopped watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds path. The file may not exist yet but its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrWatcherClosed
	case w.files[abs]:
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Unwatch removes path, dropping its directory watch when no other watched
// file lives there.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrWatcherClosed
	case !w.files[abs]:
		return ErrNotWatching
	}

	delete(w.files, abs)
	if p := w.pending[abs]; p != nil {
		p.timer.Stop()
		delete(w.pending, abs)
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir]--; w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.fsw.Remove(dir)
}

// OnChange registers a handler.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	w.mu.Unlock()
}

// Start begins delivering events. Calling it again is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.closed {
		return
	}
	w.running = true
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.loop()
}

// Stop releases the watcher and cancels pending events. A stopped watcher
// cannot be restarted.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.running {
		w.running = false
		close(w.done)
	}
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	_ = w.fsw.Close()
	w.wg.Wait()
}

// IsRunning reports whether events are being delivered.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// WatchedFiles returns the watched paths, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	w.mu.Unlock()
	slices.Sort(files)
	return files
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleRaw(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.errHandler != nil {
				w.errHandler(err)
			}
		}
	}
}

func (w *Watcher) handleRaw(ev fsnotify.Event) {
	var op Operation
	switch {
	case ev.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Has(fsnotify.Rename):
		op = OpRename
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	default:
		return // chmod
	}

	event := Event{Path: filepath.Clean(ev.Name), Op: op, Time: time.Now()}

	w.mu.Lock()
	if !w.files[event.Path] {
		w.mu.Unlock()
		return
	}
	if w.debounce == 0 {
		w.mu.Unlock()
		w.emit(event)
		return
	}
	w.queueLocked(event)
	w.mu.Unlock()
}

// queueLocked records event and restarts the file's quiet period.
func (w *Watcher) queueLocked(event Event) {
	p := w.pending[event.Path]
	if p == nil {
		p = &pending{op: event.Op}
		w.pending[event.Path] = p
	} else {
		p.op = p.op.merge(event.Op)
		p.timer.Stop()
	}
	p.at = event.Time
	p.seq++

	path, seq := event.Path, p.seq
	p.timer = time.AfterFunc(w.debounce, func() { w.fire(path, seq) })
}

func (w *Watcher) fire(path string, seq uint64) {
	w.mu.Lock()
	p := w.pending[path]
	if w.closed || p == nil || p.seq != seq {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.mu.Unlock()

	w.emit(Event{Path: path, Op: p.op, Time: p.at})
}

func (w *Watcher) emit(event Event) {
	w.mu.Lock()
	handlers := slices.Clone(w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		callHandler(h, event)
	}
}

// callHandler isolates the watcher from a panicking handler.
func callHandler(h Handler, event Event) {
	defer func() { _ = recover() }()
	h(event)
}
