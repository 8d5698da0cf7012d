// Package assets loads glTF models off the UI thread and caches them.
package assets

import (
	"context"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// State is the load state of a model.
type State int

const (
	// StateNone means the model was never requested.
	StateNone State = iota
	StatePending
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "none"
	}
}

type entry struct {
	state State
	model *Model
	err   error
}

// Loader decodes model files in background goroutines. Concurrent requests
// for the same file share one decode.
type Loader struct {
	dir    string
	log    *zap.Logger
	decode func(path string) (*Model, error)

	group singleflight.Group
	wg    sync.WaitGroup

	mu      sync.RWMutex
	entries map[string]*entry
	closed  bool

	// Stats
	hits   int
	misses int
}

// NewLoader creates a loader that resolves names under dir.
func NewLoader(dir string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		dir:     dir,
		log:     log,
		decode:  Decode,
		entries: make(map[string]*entry),
	}
}

// Path returns the file path for a model name.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.dir, name)
}

// Request starts loading name unless it is already pending, ready or failed.
func (l *Loader) Request(name string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, ok := l.entries[name]; ok {
		l.mu.Unlock()
		return
	}
	l.entries[name] = &entry{state: StatePending}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		<-l.group.DoChan(name, func() (any, error) {
			return l.load(name), nil
		})
	}()
}

// RequestAll requests every name.
func (l *Loader) RequestAll(names []string) {
	for _, n := range names {
		l.Request(n)
	}
}

// Wait requests name and blocks until it settles or ctx is done.
func (l *Loader) Wait(ctx context.Context, name string) (*Model, error) {
	l.Request(name)
	ch := l.group.DoChan(name, func() (any, error) {
		return l.load(name), nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		e := res.Val.(*entry)
		return e.model, e.err
	}
}

func (l *Loader) load(name string) *entry {
	l.mu.RLock()
	e := l.entries[name]
	l.mu.RUnlock()
	if e != nil && e.state != StatePending {
		return e
	}

	path := l.Path(name)
	model, err := l.decode(path)

	l.mu.Lock()
	defer l.mu.Unlock()
	res := &entry{state: StateReady, model: model}
	if err != nil {
		res = &entry{state: StateFailed, err: err}
		l.log.Warn("model unavailable", zap.String("path", path), zap.Error(err))
	} else {
		l.log.Debug("model loaded",
			zap.String("path", path),
			zap.Int("meshes", len(model.Meshes)),
			zap.Int("triangles", model.TriangleCount()))
	}
	l.entries[name] = res
	return res
}

// Get returns the model and its state. The model is nil unless the state is
// StateReady.
func (l *Loader) Get(name string) (*Model, State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[name]
	if !ok {
		l.misses++
		return nil, StateNone
	}
	if e.state == StateReady {
		l.hits++
	}
	return e.model, e.state
}

// Ready reports whether name has finished loading successfully.
func (l *Loader) Ready(name string) bool {
	_, st := l.Get(name)
	return st == StateReady
}

// Stats returns lookup statistics.
func (l *Loader) Stats() (hits, misses int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hits, l.misses
}

// Close stops accepting requests and waits for in-flight loads.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
