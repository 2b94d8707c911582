// Package host is the host-process side of the command bridge.
//
// Commands are registered on a Registry with typed arguments; the Server
// exposes them over stdio or HTTP (SSE and streamable) JSON-RPC transports:
//
//	registry := host.NewRegistry()
//	_ = host.Register(registry, "greet", "Greets by name", greet)
//	srv, _ := host.New(registry)
//	log.Fatal(srv.Stdio(ctx).ListenAndServe())
package host
