package host

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// Handler serves bridge requests for a single transport connection.
type Handler struct {
	*Server
	transport.Notifier
	logger logger.Logger
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = jsonrpc.Version
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	started := time.Now()
	switch request.Method {
	case schema.MethodPing:
		h.setResponse(response, &schema.PingResult{}, nil)
	case schema.MethodCommandsList:
		h.setResponse(response, &schema.ListCommandsResult{Commands: h.commands()}, nil)
	default:
		result, rpcErr := h.execute(ctx, request)
		h.setResponse(response, result, rpcErr)
	}
	elapsed := time.Since(started)
	if response.Error != nil {
		h.metrics.observe(h.metricLabel(request.Method), int(response.Error.Code), elapsed)
		h.logger.Warn("request failed", "method", request.Method, "code", response.Error.Code, "error", response.Error.Message, "elapsed", elapsed)
		return
	}
	h.metrics.observe(h.metricLabel(request.Method), 0, elapsed)
	h.logger.Debug("request served", "method", request.Method, "elapsed", elapsed)
}

// metricLabel bounds label cardinality to known methods.
func (h *Handler) metricLabel(method string) string {
	if schema.IsReserved(method) {
		return method
	}
	if _, ok := h.lookup(method); ok {
		return method
	}
	return "unknown"
}

func (h *Handler) execute(ctx context.Context, request *jsonrpc.Request) (result any, rpcErr *jsonrpc.Error) {
	cmd, ok := h.lookup(request.Method)
	if !ok {
		return nil, schema.NewUnknownCommand(request.Method)
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			rpcErr = schema.NewCommandFailed(request.Method, fmt.Errorf("panic: %v", r))
		}
	}()
	return cmd.handle(ctx, request.Params)
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.logger.Debug("notification ignored", "method", notification.Method)
}
