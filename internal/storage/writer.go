package storage

import (
	"sync"

	"weekplan/internal/schedule"
)

// Saver persists a whole state. *Adapter implements it.
type Saver interface {
	Save(schedule.State)
}

// Writer saves states on a background goroutine so edits never wait on
// disk. A save that has not started yet is replaced by a newer one; the
// last state handed to Save is always the last one written.
type Writer struct {
	saver Saver

	mu      sync.Mutex
	cond    *sync.Cond
	pending *schedule.State
	writing bool
	closed  bool

	kick chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewWriter starts the background goroutine. Call Close to stop it.
func NewWriter(saver Saver) *Writer {
	w := &Writer{
		saver: saver,
		kick:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Save queues st for writing and returns immediately. After Close it
// writes synchronously.
func (w *Writer) Save(st schedule.State) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		w.saver.Save(st)
		return
	}
	w.pending = &st
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// OnChange adapts the writer to schedule.Store.SetOnChange.
func (w *Writer) OnChange(ev schedule.ChangeEvent) {
	w.Save(ev.State)
}

// Flush blocks until every queued state has been written.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.pending != nil || w.writing {
		w.cond.Wait()
	}
}

// Close writes anything still queued and stops the goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stop)
	<-w.done

	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.kick:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		st := w.pending
		w.pending = nil
		if st == nil {
			w.writing = false
			w.cond.Broadcast()
			w.mu.Unlock()
			return
		}
		w.writing = true
		w.mu.Unlock()

		w.saver.Save(*st)
	}
}
