package client

import (
	"context"
	"fmt"

	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/jsonrpc"
)

// Handler answers host-initiated traffic on bidirectional transports. The
// bridge does not serve host calls, so every request is rejected.
type Handler struct {
	logger logger.Logger
}

func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method %s not found", request.Method), nil)
	h.logger.Debug("host request rejected", "method", request.Method)
}

// OnNotification handles notification
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.logger.Debug("host notification dropped", "method", notification.Method)
}

// NewHandler creates a handler rejecting host-initiated requests.
func NewHandler(l logger.Logger) *Handler {
	if l == nil {
		l = logger.Nop()
	}
	return &Handler{logger: l}
}
