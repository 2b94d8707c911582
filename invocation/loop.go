package invocation

import (
	"context"
	"sync"
)

// Executor runs continuations.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Post(fn func()) { f(fn) }

// Loop is a serial executor: posted functions run one at a time, in posting
// order, on the goroutine that calls Run.
type Loop struct {
	mux    sync.Mutex
	queue  []func()
	signal chan struct{}
	closed chan struct{}
	done   bool
}

func NewLoop() *Loop {
	return &Loop{
		signal: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Post enqueues fn; it never blocks. Functions posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	l.TryPost(fn)
}

// TryPost enqueues fn and reports whether it was accepted. An accepted
// function runs even when Close follows immediately.
func (l *Loop) TryPost(fn func()) bool {
	l.mux.Lock()
	if l.done {
		l.mux.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mux.Unlock()
	select {
	case l.signal <- struct{}{}:
	default:
	}
	return true
}

// Run executes posted functions until ctx is done or the loop is closed.
// Functions queued before Close still run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closed:
			l.drain()
			return nil
		case <-l.signal:
		}
	}
}

// Close stops Run after the queued functions have run.
func (l *Loop) Close() {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.done {
		return
	}
	l.done = true
	close(l.closed)
}

func (l *Loop) drain() {
	for {
		l.mux.Lock()
		if len(l.queue) == 0 {
			l.mux.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mux.Unlock()
		fn()
	}
}
