// Package client implements the frontend side of the command bridge.
//
// A Client turns a command name and an argument mapping into a JSON-RPC
// request on any jsonrpc/transport.Transport and returns an
// invocation.Pending handle immediately. The handle resolves exactly once,
// with the host's reply or with a classified failure:
//   - UnknownCommand when the host has no such command,
//   - HostExecutionFailure when the command ran and failed,
//   - TransportFailure when the channel failed or was closed,
//   - SerializationFailure when the arguments could not be encoded.
//
// Example:
//
//	cli := client.New(aTransport, client.WithLogger(log))
//	pending := cli.Invoke(ctx, "greet", map[string]any{"name": "World"})
//	pending.Then(loop, onGreeting, onFailure)
package client
