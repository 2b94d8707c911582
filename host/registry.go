package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/viant/cmdbridge/internal/collection"
	"github.com/viant/cmdbridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/xeipuuv/gojsonschema"
)

var (
	errCommandExists   = errors.New("command already registered")
	errInvalidArgument = errors.New("invalid arguments")
)

// Command is a registered host command.
type Command struct {
	schema.Command
	validator *gojsonschema.Schema
	handle    func(ctx context.Context, params json.RawMessage) (any, *jsonrpc.Error)
}

// Registry holds host commands by name.
type Registry struct {
	commands *collection.SyncMap[string, *Command]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: collection.NewSyncMap[string, *Command]()}
}

// Register adds a typed command. Arguments are validated against the schema
// derived from A and decoded into a new *A before fn runs.
func Register[A any, R any](r *Registry, name, description string, fn func(ctx context.Context, args *A) (R, error)) error {
	if r == nil {
		return fmt.Errorf("registry is nil: %w", errInvalidArgument)
	}
	if name == "" {
		return fmt.Errorf("command name is empty: %w", errInvalidArgument)
	}
	if fn == nil {
		return fmt.Errorf("%v: handler is nil: %w", name, errInvalidArgument)
	}
	if schema.IsReserved(name) {
		return fmt.Errorf("%v: name is reserved: %w", name, errInvalidArgument)
	}
	inputSchema := schema.InputSchemaFor(reflect.TypeOf((*A)(nil)))
	validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(inputSchema))
	if err != nil {
		return fmt.Errorf("%v: invalid input schema: %w", name, err)
	}
	cmd := &Command{
		Command: schema.Command{
			Name:        name,
			Description: description,
			InputSchema: inputSchema,
		},
		validator: validator,
	}
	cmd.handle = func(ctx context.Context, params json.RawMessage) (any, *jsonrpc.Error) {
		if len(params) == 0 || string(params) == "null" {
			params = json.RawMessage("{}")
		}
		if rpcErr := cmd.validate(params); rpcErr != nil {
			return nil, rpcErr
		}
		args := new(A)
		if err := decodeArgs(params, args); err != nil {
			return nil, schema.NewInvalidArguments(name, err.Error(), params)
		}
		result, err := fn(ctx, args)
		if err != nil {
			var rpcErr *jsonrpc.Error
			if errors.As(err, &rpcErr) {
				return nil, rpcErr
			}
			return nil, schema.NewCommandFailed(name, err)
		}
		return result, nil
	}
	if !r.commands.PutIfAbsent(name, cmd) {
		return fmt.Errorf("%v: %w", name, errCommandExists)
	}
	return nil
}

// decodeArgs keeps numbers in untyped values as json.Number so integers
// beyond float64 precision survive a round trip.
func decodeArgs(params json.RawMessage, args any) error {
	decoder := json.NewDecoder(bytes.NewReader(params))
	decoder.UseNumber()
	return decoder.Decode(args)
}

func (c *Command) validate(params json.RawMessage) *jsonrpc.Error {
	result, err := c.validator.Validate(gojsonschema.NewBytesLoader(params))
	if err != nil {
		return schema.NewInvalidArguments(c.Name, err.Error(), params)
	}
	if result.Valid() {
		return nil
	}
	var violations []string
	for _, violation := range result.Errors() {
		violations = append(violations, violation.String())
	}
	return schema.NewInvalidArguments(c.Name, strings.Join(violations, "; "), params)
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	return r.commands.Get(name)
}

// Commands returns command descriptors sorted by name.
func (r *Registry) Commands() []schema.Command {
	var result []schema.Command
	r.commands.Range(func(_ string, cmd *Command) bool {
		result = append(result, cmd.Command)
		return true
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
