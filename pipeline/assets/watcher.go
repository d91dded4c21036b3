package assets

import (
	"errors"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/prism/pipeline/containers"
	"github.com/spaghettifunk/prism/pipeline/core"
)

// RelinkFunc is invoked with the path of a changed stage source once
// the change has settled.
type RelinkFunc func(path string)

// pendingQueueSize bounds how many distinct changed paths can wait for
// the next flush.
const pendingQueueSize = 64

// flushInterval is how long changes are allowed to accumulate before
// the relink callback runs. Editors often write a file several times
// in quick succession.
const flushInterval = 200 * time.Millisecond

// SourceWatcher watches stage source files and schedules relinks when
// they change.
type SourceWatcher struct {
	relink RelinkFunc

	mutex    sync.Mutex
	queued   map[string]bool
	pending  *containers.RingQueue[string]
	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewSourceWatcher(relink RelinkFunc) (*SourceWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &SourceWatcher{
		relink:   relink,
		queued:   make(map[string]bool),
		pending:  containers.NewRingQueue[string](pendingQueueSize),
		done:     make(chan struct{}),
		fsnotify: fsWatch,
	}
	go w.start()
	return w, nil
}

// Watch starts watching the named source file.
func (w *SourceWatcher) Watch(path string) error {
	if w.isClosed {
		return errors.New("source watcher already closed")
	}
	return w.fsnotify.Add(path)
}

// Unwatch stops watching the named source file.
func (w *SourceWatcher) Unwatch(path string) error {
	if w.isClosed {
		return errors.New("source watcher already closed")
	}
	return w.fsnotify.Remove(path)
}

// Close stops the watcher. Pending relinks are dropped.
func (w *SourceWatcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return nil
}

func (w *SourceWatcher) start() {
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	for {
		select {
		case e := <-w.fsnotify.Events:
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.enqueue(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				w.fsnotify.Remove(e.Name)
			}

		case e := <-w.fsnotify.Errors:
			core.LogError(e.Error())

		case <-flush.C:
			w.drain()

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

// enqueue records a changed path once until the next flush.
func (w *SourceWatcher) enqueue(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.queued[path] {
		return
	}
	if err := w.pending.Enqueue(path); err != nil {
		core.LogWarn("source watcher queue full, dropping change for %s", path)
		return
	}
	w.queued[path] = true
}

// drain runs the relink callback for every settled change.
func (w *SourceWatcher) drain() {
	for {
		w.mutex.Lock()
		path, err := w.pending.Dequeue()
		if err == nil {
			delete(w.queued, path)
		}
		w.mutex.Unlock()
		if err != nil {
			return
		}
		core.LogDebug("stage source changed: %s", path)
		w.relink(path)
	}
}
