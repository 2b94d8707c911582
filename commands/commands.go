// Package commands holds the host commands shipped with the bridge.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/cmdbridge/host"
)

const (
	// Greet is the greeting command name.
	Greet = "greet"
	// Echo is the echo command name.
	Echo = "echo"
)

// GreetArgs are the greet command arguments.
type GreetArgs struct {
	Name string `json:"name" description:"name to greet" minLength:"1"`
}

// GreetCommand returns the greeting for args.Name.
func GreetCommand(_ context.Context, args *GreetArgs) (string, error) {
	if args.Name == "" {
		return "", errors.New("name is empty")
	}
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", args.Name), nil
}

// EchoCommand returns its arguments unchanged.
func EchoCommand(_ context.Context, args *map[string]any) (map[string]any, error) {
	if *args == nil {
		return map[string]any{}, nil
	}
	return *args, nil
}

// Register adds the built-in commands to registry.
func Register(registry *host.Registry) error {
	if err := host.Register(registry, Greet, "Returns a greeting for the given name.", GreetCommand); err != nil {
		return err
	}
	return host.Register(registry, Echo, "Returns the arguments unchanged.", EchoCommand)
}
