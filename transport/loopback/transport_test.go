package loopback

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

type echoHandler struct {
	release       chan struct{}
	notifications chan string
}

func (h *echoHandler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if h.release != nil {
		<-h.release
	}
	response.Result = request.Params
}

func (h *echoHandler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.notifications <- notification.Method
}

func newTransport(handler *echoHandler) *Transport {
	return New(context.Background(), func(ctx context.Context, aTransport transport.Transport) transport.Handler {
		return handler
	})
}

func TestTransport_Send(t *testing.T) {
	aTransport := newTransport(&echoHandler{})
	response, err := aTransport.Send(context.Background(), &jsonrpc.Request{
		Jsonrpc: jsonrpc.Version,
		Id:      1,
		Method:  "echo",
		Params:  json.RawMessage(`{"a":1}`),
	})
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Nil(t, response.Error)
	assert.JSONEq(t, `{"a":1}`, string(response.Result))
}

func TestTransport_Notify(t *testing.T) {
	handler := &echoHandler{notifications: make(chan string, 1)}
	aTransport := newTransport(handler)
	require.NoError(t, aTransport.Notify(context.Background(), &jsonrpc.Notification{Jsonrpc: jsonrpc.Version, Method: "tick"}))
	assert.Equal(t, "tick", <-handler.notifications)
}

func TestTransport_Close(t *testing.T) {
	handler := &echoHandler{release: make(chan struct{})}
	defer close(handler.release)
	aTransport := newTransport(handler)

	errs := make(chan error, 1)
	go func() {
		_, err := aTransport.Send(context.Background(), &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 1, Method: "wait"})
		errs <- err
	}()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, aTransport.Close())
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("send did not return after close")
	}

	_, err := aTransport.Send(context.Background(), &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 2, Method: "echo"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, aTransport.Notify(context.Background(), &jsonrpc.Notification{Method: "tick"}), ErrClosed)
	assert.NoError(t, aTransport.Close())
}

func TestTransport_ContextCancel(t *testing.T) {
	handler := &echoHandler{release: make(chan struct{})}
	defer close(handler.release)
	aTransport := newTransport(handler)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := aTransport.Send(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 1, Method: "wait"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
