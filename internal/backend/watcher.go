package backend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDeviceChange Kind = iota
	KindFeedClosed
)

// Event conveys a device change or the error that ended the feed.
type Event struct {
	Kind    Kind
	Change  adb.DeviceChange
	Batched int
	Err     error
}

// Source opens a device-change feed.
type Source interface {
	Changes() (adb.ChangeFeed, error)
}

var errFeedClosed = errors.New("device feed closed")

// Watcher forwards device changes from the bridge, coalescing bursts so the
// loop sees at most one event per settle interval.
type Watcher struct {
	source Source
	settle time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching src.
func NewWatcher(src Source, settle time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source: src,
		settle: settle,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.watch()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher and shuts the feed down.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	feed, err := w.source.Changes()
	if err != nil {
		w.emit(Event{Kind: KindFeedClosed, Err: err})
		return
	}
	defer feed.Shutdown()

	throttle := newThrottle(w.settle)
	for {
		select {
		case <-w.ctx.Done():
			return
		case change, ok := <-feed.C():
			if !ok {
				err := feed.Err()
				if err == nil {
					err = errFeedClosed
				}
				w.emit(Event{Kind: KindFeedClosed, Err: err})
				return
			}
			if !throttle.wait(w.ctx) {
				return
			}
			last, batched, open := drain(feed.C(), change)
			if !w.emit(Event{Kind: KindDeviceChange, Change: last, Batched: batched}) {
				return
			}
			if !open {
				w.emit(Event{Kind: KindFeedClosed, Err: errFeedClosed})
				return
			}
		}
	}
}

// drain consumes changes already queued behind first and returns the latest.
func drain(ch <-chan adb.DeviceChange, first adb.DeviceChange) (adb.DeviceChange, int, bool) {
	last, count := first, 1
	for {
		select {
		case next, ok := <-ch:
			if !ok {
				return last, count, false
			}
			last = next
			count++
		default:
			return last, count, true
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
