package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInputSchemaFor(t *testing.T) {
	type Args struct {
		Name    string            `json:"name" description:"who to greet"`
		Times   int               `json:"times,omitempty"`
		Note    *string           `json:"note"`
		Tags    []string          `json:"tags,omitempty"`
		Labels  map[string]string `json:"labels,omitempty"`
		At      time.Time         `json:"at,omitempty"`
		Skipped string            `json:"-"`
		hidden  string
	}
	var testCases = []struct {
		description string
		input       reflect.Type
		expect      map[string]any
	}{
		{
			description: "struct",
			input:       reflect.TypeOf(&Args{}),
			expect: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":   map[string]any{"type": "string", "description": "who to greet"},
					"times":  map[string]any{"type": "integer"},
					"note":   map[string]any{"type": []string{"string", "null"}},
					"tags":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"labels": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
					"at":     map[string]any{"type": "string", "format": "date-time"},
				},
				"required": []string{"name"},
			},
		},
		{
			description: "open map",
			input:       reflect.TypeOf(map[string]any{}),
			expect:      map[string]any{"type": "object"},
		},
		{
			description: "nil type",
			input:       nil,
			expect:      map[string]any{},
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, InputSchemaFor(testCase.input), testCase.description)
	}
}

type Common struct {
	Trace string `json:"trace"`
	Level int    `json:"level,omitempty"`
}

type paging struct {
	Limit int `json:"limit"`
}

type Window struct {
	Size int `json:"size"`
}

type Tree struct {
	Name     string  `json:"name"`
	Children []Tree  `json:"children,omitempty"`
	Parent   *Tree   `json:"parent,omitempty"`
	Siblings []*Tree `json:"siblings,omitempty"`
}

func TestInputSchemaFor_Embedded(t *testing.T) {
	type Args struct {
		Common
		paging
		*Window
		Query string `json:"query"`
		Level string `json:"level"`
	}
	actual := InputSchemaFor(reflect.TypeOf(Args{}))
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"trace": map[string]any{"type": "string"},
			"limit": map[string]any{"type": "integer"},
			"size":  map[string]any{"type": "integer"},
			"query": map[string]any{"type": "string"},
			"level": map[string]any{"type": "string"},
		},
		"required": []string{"trace", "limit", "query", "level"},
	}, actual)
}

func TestInputSchemaFor_Bytes(t *testing.T) {
	type Args struct {
		Data []byte `json:"data"`
	}
	actual := InputSchemaFor(reflect.TypeOf(Args{}))
	properties := actual["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string"}, properties["data"])
}

func TestInputSchemaFor_Recursive(t *testing.T) {
	actual := InputSchemaFor(reflect.TypeOf(Tree{}))
	properties := actual["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "array", "items": map[string]any{}}, properties["children"])
	assert.Equal(t, map[string]any{}, properties["parent"])
	assert.Equal(t, []string{"name"}, actual["required"])
}

func TestInputSchemaFor_MinLength(t *testing.T) {
	type Args struct {
		Name string `json:"name" minLength:"1"`
	}
	actual := InputSchemaFor(reflect.TypeOf(Args{}))
	properties := actual["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string", "minLength": 1}, properties["name"])
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved(MethodPing))
	assert.True(t, IsReserved(MethodCommandsList))
	assert.False(t, IsReserved("greet"))
}
