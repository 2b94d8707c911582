package client

import (
	"context"
	"encoding/json"

	"github.com/viant/cmdbridge/invocation"
	"github.com/viant/cmdbridge/schema"
)

// Interface defines the bridge client operations
type Interface interface {
	// Invoke issues a command and returns its pending invocation
	Invoke(ctx context.Context, name string, args any) *invocation.Pending[json.RawMessage]

	// Ping pings the host
	Ping(ctx context.Context) error

	// ListCommands lists host commands
	ListCommands(ctx context.Context) (*schema.ListCommandsResult, error)

	// Close fails in-flight invocations and releases the transport
	Close() error
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)
