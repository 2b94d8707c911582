package invocation

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// State is the lifecycle state of a pending invocation.
type State int32

const (
	Created State = iota
	Sent
	Resolved
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Sent:
		return "sent"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Pending is a handle to an outstanding invocation. It resolves exactly once.
type Pending[T any] struct {
	id     string
	state  atomic.Int32
	once   sync.Once
	done   chan struct{}
	result Result[T]
}

// New creates a pending invocation; an empty id is replaced with a uuid.
func New[T any](id string) *Pending[T] {
	if id == "" {
		id = uuid.NewString()
	}
	return &Pending[T]{id: id, done: make(chan struct{})}
}

// ID returns the correlation token of this invocation.
func (p *Pending[T]) ID() string {
	return p.id
}

func (p *Pending[T]) State() State {
	return State(p.state.Load())
}

// MarkSent moves Created to Sent; it has no effect once resolved.
func (p *Pending[T]) MarkSent() {
	p.state.CompareAndSwap(int32(Created), int32(Sent))
}

// Resolve stores the outcome. Only the first call has effect; it reports
// whether this call resolved the invocation.
func (p *Pending[T]) Resolve(result Result[T]) bool {
	resolved := false
	p.once.Do(func() {
		p.result = result
		p.state.Store(int32(Resolved))
		close(p.done)
		resolved = true
	})
	return resolved
}

func (p *Pending[T]) Succeed(value T) bool {
	return p.Resolve(Success(value))
}

func (p *Pending[T]) Fail(err error) bool {
	return p.Resolve(Failed[T](err))
}

// Done is closed once the invocation is resolved.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome without blocking; ok is false while unresolved.
func (p *Pending[T]) Result() (Result[T], bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		var zero Result[T]
		return zero, false
	}
}

// Await blocks until the invocation resolves or ctx is done. Giving up on ctx
// does not cancel the invocation.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.result.Unpack()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers a continuation that runs once after resolution, on exec when
// provided. onFailure may be nil only when the caller deliberately ignores failures.
func (p *Pending[T]) Then(exec Executor, onSuccess func(T), onFailure func(*Failure)) {
	run := func() {
		if p.result.Failure != nil {
			if onFailure != nil {
				onFailure(p.result.Failure)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(p.result.Value)
		}
	}
	go func() {
		<-p.done
		if exec == nil {
			run()
			return
		}
		exec.Post(run)
	}()
}

// Map derives a pending whose value is fn applied to p's value. An fn error
// resolves the derived invocation as a TransportFailure (malformed reply).
func Map[T any, R any](p *Pending[T], fn func(T) (R, error)) *Pending[R] {
	ret := New[R](p.id)
	if p.State() == Sent {
		ret.MarkSent()
	}
	go func() {
		<-p.done
		if p.result.Failure != nil {
			ret.Resolve(Result[R]{Failure: p.result.Failure})
			return
		}
		value, err := fn(p.result.Value)
		if err != nil {
			ret.Fail(NewFailure(TransportFailure, "", err))
			return
		}
		ret.Succeed(value)
	}()
	return ret
}
