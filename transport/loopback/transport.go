// Package loopback provides an in-process bridge transport that serves
// requests with a host handler in the same process.
package loopback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// ErrClosed is returned by Send and Notify after Close.
var ErrClosed = errors.New("loopback transport closed")

// NewHandler creates the handler serving a transport, as the jsonrpc servers do.
type NewHandler func(ctx context.Context, transport transport.Transport) transport.Handler

// Transport delivers requests to a handler by value, through their JSON encoding.
type Transport struct {
	handler transport.Handler
	closed  atomic.Bool
	done    chan struct{}
}

// Send encodes the request, serves it and returns the decoded response.
func (t *Transport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if t.closed.Load() {
		return nil, ErrClosed
	}
	wireRequest := &jsonrpc.Request{}
	if err := roundTrip(request, wireRequest); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	type reply struct {
		response *jsonrpc.Response
		err      error
	}
	replies := make(chan reply, 1)
	go func() {
		response := &jsonrpc.Response{Id: wireRequest.Id, Jsonrpc: jsonrpc.Version}
		t.handler.Serve(ctx, wireRequest, response)
		wireResponse := &jsonrpc.Response{}
		if err := roundTrip(response, wireResponse); err != nil {
			replies <- reply{err: fmt.Errorf("failed to decode response: %w", err)}
			return
		}
		replies <- reply{response: wireResponse}
	}()
	select {
	case r := <-replies:
		if t.closed.Load() {
			return nil, ErrClosed
		}
		return r.response, r.err
	case <-t.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Notify delivers a notification to the handler.
func (t *Transport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	if t.closed.Load() {
		return ErrClosed
	}
	t.handler.OnNotification(ctx, notification)
	return nil
}

// Close fails pending and future sends.
func (t *Transport) Close() error {
	if t.closed.CompareAndSwap(false, true) {
		close(t.done)
	}
	return nil
}

func roundTrip(source, dest interface{}) error {
	data, err := json.Marshal(source)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// New creates a loopback transport served by the handler newHandler returns.
func New(ctx context.Context, newHandler NewHandler) *Transport {
	ret := &Transport{done: make(chan struct{})}
	ret.handler = newHandler(ctx, ret)
	return ret
}
