package example

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/viant/cmdbridge/client"
	"github.com/viant/cmdbridge/host"
	"github.com/viant/cmdbridge/invocation"
	"github.com/viant/cmdbridge/transport/loopback"
)

type Addition struct {
	A int `json:"a"`
	B int `json:"b"`
}

func newClient() *client.Client {
	registry := host.NewRegistry()
	// Register a simple calculator command: adds two integers
	if err := host.Register(registry, "add", "Add two integers", func(ctx context.Context, input *Addition) (int, error) {
		return input.A + input.B, nil
	}); err != nil {
		log.Fatal(err)
	}
	srv, err := host.New(registry)
	if err != nil {
		log.Fatalf("Failed to create host: %v", err)
	}
	return client.New(loopback.New(context.Background(), srv.NewHandler))
}

func Example_call() {
	cli := newClient()
	defer cli.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sum, err := client.Call[Addition, int](ctx, cli, "add", Addition{A: 2, B: 3}).Await(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sum)
	// Output: 5
}

func Example_then() {
	cli := newClient()
	defer cli.Close()
	done := make(chan struct{})

	pending := cli.Invoke(context.Background(), "subtract", map[string]any{"a": 2, "b": 3})
	pending.Then(nil, func(value json.RawMessage) {
		fmt.Println(string(value))
		close(done)
	}, func(failure *invocation.Failure) {
		fmt.Println(failure.Kind)
		close(done)
	})
	<-done
	// Output: UnknownCommand
}
