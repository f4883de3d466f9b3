package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

var errSinkClosed = errors.New("logger: sink closed")

// sink fans lines out to several writers from a single goroutine so that
// handlers never block on slow outputs.
type sink struct {
	lines   chan []byte
	flushes chan chan error
	done    chan struct{}
	stop    sync.Once
	closed  atomic.Bool

	outs []*bufio.Writer
	err  atomic.Pointer[error]
}

func newSink(writers []io.Writer, bufSize int) *sink {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	s := &sink{
		lines:   make(chan []byte, 256),
		flushes: make(chan chan error),
		done:    make(chan struct{}),
	}
	for _, w := range writers {
		if w != nil {
			s.outs = append(s.outs, bufio.NewWriterSize(w, bufSize))
		}
	}
	go s.run()
	return s
}

func (s *sink) run() {
	defer close(s.done)
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				s.fail(s.flushAll())
				return
			}
			s.fail(s.writeAll(line))
		case ack := <-s.flushes:
			ack <- s.flushAll()
		}
	}
}

// Write copies p and queues it. It blocks only when the queue is full.
func (s *sink) Write(p []byte) error {
	if err := s.firstErr(); err != nil {
		return err
	}
	if s.closed.Load() {
		return errSinkClosed
	}
	if len(p) == 0 {
		return nil
	}
	s.lines <- append([]byte(nil), p...)
	return nil
}

// Flush blocks until every queued line has reached the writers.
func (s *sink) Flush() error {
	if s.closed.Load() {
		return s.firstErr()
	}
	ack := make(chan error, 1)
	s.flushes <- ack
	return errors.Join(<-ack, s.firstErr())
}

// Close drains the queue and stops the writer goroutine.
func (s *sink) Close() error {
	s.stop.Do(func() {
		s.closed.Store(true)
		close(s.lines)
	})
	<-s.done
	return s.firstErr()
}

func (s *sink) writeAll(line []byte) error {
	for _, w := range s.outs {
		if _, err := w.Write(line); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (s *sink) flushAll() error {
	var errs []error
	for _, w := range s.outs {
		errs = append(errs, w.Flush())
	}
	return errors.Join(errs...)
}

func (s *sink) fail(err error) {
	if err != nil {
		s.err.CompareAndSwap(nil, &err)
	}
}

func (s *sink) firstErr() error {
	if p := s.err.Load(); p != nil {
		return *p
	}
	return nil
}
