// Package cmdbridge provides configuration-driven constructors for the command bridge.
//
// The bridge lets a frontend invoke named commands implemented by a host over
// JSON-RPC 2.0 and receive exactly one success or classified failure per call.
// This package glues the client and host packages with concrete transports and
// option structures that can be populated from CLI flags or YAML files:
//  1. NewClient – returns a client connected over stdio, SSE, streamable HTTP or loopback,
//  2. NewHost – returns a host server exposing a command registry,
//  3. LoadOptions – reads options from any afs supported URL.
//
// Example:
//
//	options := &cmdbridge.ClientOptions{}
//	_ = cmdbridge.LoadOptions(ctx, "config.yaml", options)
//	cli, _ := cmdbridge.NewClient(ctx, options)
//	pending := cli.Invoke(ctx, "greet", map[string]any{"name": "World"})
package cmdbridge
