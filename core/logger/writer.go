package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// asyncWriter decouples log emission from sink I/O. Records are queued and
// a single goroutine fans them out, flushing when the queue drains so
// bursts are batched but logs never sit in the buffer while idle.
type asyncWriter struct {
	queue   chan []byte
	flushes chan chan error
	drained chan struct{}

	closeOnce sync.Once
	gate      sync.RWMutex
	closed    bool

	mu    sync.Mutex
	sinks []*bufio.Writer
	fail  error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	var sinks []*bufio.Writer
	for _, w := range writers {
		if w != nil {
			sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
		}
	}
	aw := &asyncWriter{
		queue:   make(chan []byte, 256),
		flushes: make(chan chan error),
		drained: make(chan struct{}),
		sinks:   sinks,
	}
	go aw.run()
	return aw
}

func (w *asyncWriter) run() {
	for {
		select {
		case rec, ok := <-w.queue:
			if !ok {
				w.flushSinks()
				close(w.drained)
				return
			}
			w.writeSinks(rec)
			if len(w.queue) == 0 {
				w.flushSinks()
			}
		case ack := <-w.flushes:
			ack <- w.flushSinks()
		}
	}
}

// Write enqueues one record. The payload is copied because slog reuses
// its buffer. A full queue degrades to a blocking enqueue so records are
// delayed rather than dropped. Records arriving after Close are dropped;
// the sinks are already flushed and closing.
func (w *asyncWriter) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := w.err(); err != nil {
		return err
	}
	rec := append([]byte(nil), p...)

	w.gate.RLock()
	defer w.gate.RUnlock()
	if w.closed {
		return nil
	}
	w.queue <- rec
	return nil
}

// Flush blocks until everything queued so far has reached the sinks.
// After Close it only reports the lifetime error state.
func (w *asyncWriter) Flush() error {
	if err := w.err(); err != nil {
		return err
	}

	w.gate.RLock()
	if w.closed {
		w.gate.RUnlock()
		return w.err()
	}
	ack := make(chan error, 1)
	w.flushes <- ack
	w.gate.RUnlock()
	return <-ack
}

// Close drains the queue, flushes the sinks, and reports the first write
// error seen over the writer's lifetime. Safe to call more than once.
func (w *asyncWriter) Close() error {
	w.closeOnce.Do(func() {
		w.gate.Lock()
		w.closed = true
		close(w.queue)
		w.gate.Unlock()
	})
	<-w.drained
	return w.err()
}

func (w *asyncWriter) writeSinks(rec []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sink := range w.sinks {
		if _, err := sink.Write(rec); err != nil {
			w.recordErr(err)
			return
		}
	}
}

func (w *asyncWriter) flushSinks() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
			w.recordErr(err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fail
}

// recordErr keeps the first failure; callers must hold mu.
func (w *asyncWriter) recordErr(err error) {
	if w.fail == nil {
		w.fail = err
	}
}
