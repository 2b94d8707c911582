package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/viant/cmdbridge/internal/collection"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/invocation"
	"github.com/viant/cmdbridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

var errClosed = errors.New("bridge client is closed")

// Client is the frontend side of the command bridge.
type Client struct {
	transport transport.Transport
	sequencer transport.Sequencer
	logger    logger.Logger
	requestID atomic.Uint64
	inflight  *collection.SyncMap[string, func(error) bool]
	closed    atomic.Bool
	closer    func() error
}

// Invoke sends command name with args to the host and returns immediately.
// The returned handle resolves exactly once with the raw result or a failure.
func (c *Client) Invoke(ctx context.Context, name string, args any) *invocation.Pending[json.RawMessage] {
	pending := invocation.New[json.RawMessage]("")
	log := c.logger.With("command", name, "invocation", pending.ID())
	if name == "" {
		pending.Fail(&invocation.Failure{Kind: invocation.UnknownCommand, Message: "command name is empty"})
		return pending
	}
	if c.closed.Load() {
		pending.Fail(invocation.NewFailure(invocation.TransportFailure, name, errClosed))
		return pending
	}
	request, err := c.newRequest(name, args)
	if err != nil {
		log.Warn("arguments not serializable", "error", err)
		pending.Fail(invocation.NewFailure(invocation.SerializationFailure, name, err))
		return pending
	}

	c.inflight.Put(pending.ID(), func(err error) bool {
		return pending.Fail(invocation.NewFailure(invocation.TransportFailure, name, err))
	})
	pending.MarkSent()
	log.Debug("invocation sent")
	go func() {
		defer c.inflight.Delete(pending.ID())
		response, err := c.transport.Send(ctx, request)
		result := c.result(name, response, err)
		if !pending.Resolve(result) {
			log.Debug("late reply ignored")
			return
		}
		if result.Failure != nil {
			log.Debug("invocation failed", "kind", result.Failure.Kind.String(), "error", result.Failure.Message)
			return
		}
		log.Debug("invocation resolved")
	}()
	return pending
}

// Call is the typed form of Invoke: the success payload is decoded into R.
func Call[A any, R any](ctx context.Context, c *Client, name string, args A) *invocation.Pending[R] {
	return invocation.Map(c.Invoke(ctx, name, args), func(raw json.RawMessage) (R, error) {
		var result R
		if err := json.Unmarshal(raw, &result); err != nil {
			return result, fmt.Errorf("failed to decode %v result: %w", name, err)
		}
		return result, nil
	})
}

// Ping checks that the host answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := send[schema.PingRequestParams, schema.PingResult](ctx, c, schema.MethodPing, &schema.PingRequestParams{})
	return err
}

// ListCommands returns the commands the host exposes.
func (c *Client) ListCommands(ctx context.Context) (*schema.ListCommandsResult, error) {
	return send[schema.ListCommandsRequestParams, schema.ListCommandsResult](ctx, c, schema.MethodCommandsList, &schema.ListCommandsRequestParams{})
}

// Close fails every in-flight invocation with a transport failure and
// releases the transport.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.inflight.Range(func(id string, fail func(error) bool) bool {
		fail(errors.New("transport closed before reply"))
		c.inflight.Delete(id)
		return true
	})
	if c.closer != nil {
		return c.closer()
	}
	if closer, ok := c.transport.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) newRequest(method string, args any) (*jsonrpc.Request, error) {
	request := &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Method: method}
	if args != nil {
		params, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		request.Params = params
	}
	if c.sequencer != nil {
		request.Id = c.sequencer.NextRequestID()
	} else {
		request.Id = c.requestID.Add(1)
	}
	return request, nil
}

// result maps a transport reply onto the invocation outcome.
func (c *Client) result(name string, response *jsonrpc.Response, err error) invocation.Result[json.RawMessage] {
	if err != nil {
		return invocation.Failed[json.RawMessage](invocation.NewFailure(invocation.TransportFailure, name, err))
	}
	if response == nil {
		return invocation.Failed[json.RawMessage](&invocation.Failure{Kind: invocation.TransportFailure, Command: name, Message: "empty response"})
	}
	if response.Error != nil {
		return invocation.Failed[json.RawMessage](asFailure(name, response.Error))
	}
	if len(response.Result) == 0 {
		return invocation.Success(json.RawMessage("null"))
	}
	return invocation.Success(json.RawMessage(response.Result))
}

// asFailure classifies a host error reply.
func asFailure(name string, rpcErr *jsonrpc.Error) *invocation.Failure {
	ret := &invocation.Failure{
		Command: name,
		Code:    int(rpcErr.Code),
		Message: rpcErr.Message,
		Data:    json.RawMessage(rpcErr.Data),
		Err:     rpcErr,
	}
	switch ret.Code {
	case schema.MethodNotFound:
		ret.Kind = invocation.UnknownCommand
	case schema.ParseError, schema.InvalidRequest:
		ret.Kind = invocation.TransportFailure
	default:
		ret.Kind = invocation.HostExecutionFailure
	}
	return ret
}

// send issues a blocking bridge request.
func send[P any, R any](ctx context.Context, client *Client, method string, parameters *P) (*R, error) {
	if client.closed.Load() {
		return nil, errClosed
	}
	req, err := client.newRequest(method, parameters)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	response, err := client.transport.Send(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result R
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, jsonrpc.NewInternalError(fmt.Sprintf("failed to unmarshal %v result: %v", method, err), nil)
	}
	return &result, nil
}

// New creates a bridge client over transport.
func New(aTransport transport.Transport, options ...Option) *Client {
	ret := &Client{
		transport: aTransport,
		logger:    logger.Nop(),
		inflight:  collection.NewSyncMap[string, func(error) bool](),
	}
	ret.sequencer, _ = aTransport.(transport.Sequencer)
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
