package schema

import (
	"fmt"

	"github.com/viant/jsonrpc"
)

// JSON-RPC 2.0 error codes used by the bridge.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603

	Unauthorized  = -32001
	CommandFailed = -32003
)

// NewUnknownCommand creates the error returned for unregistered commands.
func NewUnknownCommand(name string) *jsonrpc.Error {
	return jsonrpc.NewMethodNotFound(fmt.Sprintf("command %v not found", name), nil)
}

// NewInvalidArguments creates the error returned when arguments fail validation.
func NewInvalidArguments(name string, reason string, params []byte) *jsonrpc.Error {
	return jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid arguments for %v: %v", name, reason), params)
}

// NewCommandFailed creates the error returned when a command reports an error.
func NewCommandFailed(name string, err error) *jsonrpc.Error {
	return jsonrpc.NewError(CommandFailed, fmt.Sprintf("command %v failed: %v", name, err), nil)
}
