// Package example contains self-contained snippets that demonstrate how to
// register host commands and invoke them from a bridge client.
//
// The examples run with `go test` over the in-process loopback transport.
package example
