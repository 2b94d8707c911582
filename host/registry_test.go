package host

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/cmdbridge/schema"
	"github.com/viant/jsonrpc"
)

type sumArgs struct {
	A     int     `json:"a"`
	B     int     `json:"b"`
	Scale *int    `json:"scale,omitempty"`
	Note  string  `json:"note,omitempty"`
	Ratio float64 `json:"-"`
}

func sum(_ context.Context, args *sumArgs) (int, error) {
	total := args.A + args.B
	if args.Scale != nil {
		total *= *args.Scale
	}
	return total, nil
}

func TestRegister(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		expectErr   bool
	}{
		{description: "valid", name: "sum"},
		{description: "empty name", name: "", expectErr: true},
		{description: "reserved ping", name: schema.MethodPing, expectErr: true},
		{description: "reserved list", name: schema.MethodCommandsList, expectErr: true},
	}
	for _, testCase := range testCases {
		registry := NewRegistry()
		err := Register(registry, testCase.name, "adds", sum)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			assert.Empty(t, registry.Commands(), testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, Register(registry, "sum", "adds", sum))
	err := Register(registry, "sum", "adds again", sum)
	assert.ErrorIs(t, err, errCommandExists)
	cmd, ok := registry.Lookup("sum")
	require.True(t, ok)
	assert.Equal(t, "adds", cmd.Description)
}

func TestRegister_NilHandler(t *testing.T) {
	var fn func(ctx context.Context, args *sumArgs) (int, error)
	assert.ErrorIs(t, Register(NewRegistry(), "sum", "", fn), errInvalidArgument)
}

func TestCommand_Handle(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, Register(registry, "sum", "adds", sum))
	require.NoError(t, Register(registry, "fail", "fails", func(ctx context.Context, args *struct{}) (any, error) {
		return nil, errors.New("disk full")
	}))
	require.NoError(t, Register(registry, "denied", "fails with rpc error", func(ctx context.Context, args *struct{}) (any, error) {
		return nil, jsonrpc.NewError(schema.Unauthorized, "denied", nil)
	}))

	var testCases = []struct {
		description string
		command     string
		params      string
		expect      any
		expectCode  int
	}{
		{description: "sum", command: "sum", params: `{"a":1,"b":2}`, expect: 3},
		{description: "optional pointer", command: "sum", params: `{"a":1,"b":2,"scale":10}`, expect: 30},
		{description: "null pointer", command: "sum", params: `{"a":1,"b":2,"scale":null}`, expect: 3},
		{description: "missing required", command: "sum", params: `{"a":1}`, expectCode: schema.InvalidParams},
		{description: "wrong type", command: "sum", params: `{"a":"1","b":2}`, expectCode: schema.InvalidParams},
		{description: "not an object", command: "sum", params: `[1,2]`, expectCode: schema.InvalidParams},
		{description: "empty params", command: "fail", params: ``, expectCode: schema.CommandFailed},
		{description: "null params", command: "fail", params: `null`, expectCode: schema.CommandFailed},
		{description: "rpc error passes through", command: "denied", params: `{}`, expectCode: schema.Unauthorized},
	}
	for _, testCase := range testCases {
		cmd, ok := registry.Lookup(testCase.command)
		require.True(t, ok, testCase.description)
		result, rpcErr := cmd.handle(context.Background(), json.RawMessage(testCase.params))
		if testCase.expectCode != 0 {
			require.NotNil(t, rpcErr, testCase.description)
			assert.EqualValues(t, testCase.expectCode, rpcErr.Code, testCase.description)
			continue
		}
		require.Nil(t, rpcErr, testCase.description)
		assert.Equal(t, testCase.expect, result, testCase.description)
	}
}

func TestRegistry_Commands(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, Register(registry, "zeta", "", sum))
	require.NoError(t, Register(registry, "alpha", "", sum))
	commands := registry.Commands()
	require.Len(t, commands, 2)
	assert.Equal(t, "alpha", commands[0].Name)
	assert.Equal(t, "zeta", commands[1].Name)

	properties, ok := commands[0].InputSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "a")
	assert.Contains(t, properties, "scale")
	assert.NotContains(t, properties, "Ratio")
	assert.ElementsMatch(t, []string{"a", "b"}, commands[0].InputSchema["required"])
}

type traceArgs struct {
	Trace string `json:"trace"`
}

type searchArgs struct {
	traceArgs
	Query string `json:"query"`
}

type blobArgs struct {
	Data []byte `json:"data"`
}

type nodeArgs struct {
	Name     string     `json:"name"`
	Children []nodeArgs `json:"children,omitempty"`
	Parent   *nodeArgs  `json:"parent,omitempty"`
}

func TestCommand_HandleArgumentShapes(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, Register(registry, "search", "embedded", func(ctx context.Context, args *searchArgs) (string, error) {
		return args.Trace + "/" + args.Query, nil
	}))
	require.NoError(t, Register(registry, "blob", "bytes", func(ctx context.Context, args *blobArgs) (string, error) {
		return string(args.Data), nil
	}))
	require.NoError(t, Register(registry, "tree", "recursive", func(ctx context.Context, args *nodeArgs) (int, error) {
		count := 1 + len(args.Children)
		if args.Parent != nil {
			count++
		}
		return count, nil
	}))

	var testCases = []struct {
		description string
		name        string
		params      string
		expect      any
		expectCode  int
	}{
		{description: "embedded fields flattened", name: "search", params: `{"trace":"t1","query":"q"}`, expect: "t1/q"},
		{description: "embedded field required", name: "search", params: `{"query":"q"}`, expectCode: schema.InvalidParams},
		{description: "bytes as base64", name: "blob", params: `{"data":"aGk="}`, expect: "hi"},
		{description: "bytes as array rejected", name: "blob", params: `{"data":[104,105]}`, expectCode: schema.InvalidParams},
		{description: "recursive", name: "tree", params: `{"name":"root","children":[{"name":"a","children":[{"name":"b"}]}],"parent":{"name":"up"}}`, expect: 3},
	}
	for _, testCase := range testCases {
		cmd, ok := registry.Lookup(testCase.name)
		require.True(t, ok, testCase.description)
		result, rpcErr := cmd.handle(context.Background(), json.RawMessage(testCase.params))
		if testCase.expectCode != 0 {
			require.NotNil(t, rpcErr, testCase.description)
			assert.EqualValues(t, testCase.expectCode, rpcErr.Code, testCase.description)
			continue
		}
		require.Nil(t, rpcErr, testCase.description)
		assert.Equal(t, testCase.expect, result, testCase.description)
	}
}
