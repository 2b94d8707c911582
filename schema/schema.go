package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"

	"github.com/viant/tagly/format"
)

var (
	timeType       = reflect.TypeOf(time.Time{})
	rawMessageType = reflect.TypeOf(json.RawMessage{})
)

// InputSchemaFor returns a JSON schema describing the arguments of type t.
// Non-struct types produce the schema of the value itself.
func InputSchemaFor(t reflect.Type) map[string]any {
	if t == nil {
		return map[string]any{}
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	b := &builder{visiting: map[reflect.Type]bool{}}
	return b.schemaForType(t, false)
}

// builder tracks the struct types on the current path; a type seen again
// is described by an empty (any value) schema.
type builder struct {
	visiting map[reflect.Type]bool
}

// schemaForType returns a JSON schema for t; inSlice is set for slice elements.
func (b *builder) schemaForType(t reflect.Type, inSlice bool) map[string]any {
	schema := make(map[string]any)

	if t == timeType {
		schema["type"] = "string"
		schema["format"] = "date-time"
		return schema
	}
	if t == rawMessageType {
		return schema
	}

	if t.Kind() == reflect.Ptr {
		schema = b.schemaForType(t.Elem(), inSlice)
		// pointers accept null unless they are slice elements
		if typeName, ok := schema["type"].(string); ok && !inSlice {
			schema["type"] = []string{typeName, "null"}
		}
		return schema
	}

	switch t.Kind() {
	case reflect.Bool:
		schema["type"] = "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		schema["type"] = "integer"
	case reflect.Float32, reflect.Float64:
		schema["type"] = "number"
	case reflect.String:
		schema["type"] = "string"
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			// encoding/json sends []byte as base64 text
			schema["type"] = "string"
			break
		}
		schema["type"] = "array"
		schema["items"] = b.schemaForType(t.Elem(), true)
	case reflect.Map:
		schema["type"] = "object"
		if additional := b.schemaForType(t.Elem(), false); len(additional) > 0 {
			schema["additionalProperties"] = additional
		}
	case reflect.Struct:
		if b.visiting[t] {
			return schema
		}
		b.visiting[t] = true
		properties, required := b.structToProperties(t)
		delete(b.visiting, t)
		schema["type"] = "object"
		schema["properties"] = properties
		if len(required) > 0 {
			schema["required"] = required
		}
	case reflect.Interface:
		// any value
	default:
		schema["type"] = "string"
	}
	return schema
}

// structToProperties converts a struct type into schema properties and required fields.
// Embedded structs without a json name are flattened the way encoding/json does.
func (b *builder) structToProperties(t reflect.Type) (map[string]any, []string) {
	properties := make(map[string]any)
	var required []string
	explicit := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, _ := format.Parse(field.Tag, "json", "format")
		if tag == nil {
			tag = &format.Tag{}
		}
		if tag.Ignore {
			continue
		}
		if field.Anonymous && tag.Name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if !field.IsExported() && field.Type.Kind() == reflect.Ptr {
					// encoding/json cannot allocate it
					continue
				}
				b.mergeEmbedded(embedded, field.Type.Kind() == reflect.Ptr, properties, &required, explicit)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		fieldName := field.Name
		if tag.Name != "" {
			fieldName = tag.Name
		}

		fieldSchema := b.schemaForType(field.Type, false)
		if tag.DateFormat != "" {
			fieldSchema["format"] = tag.DateFormat
		}
		if description := field.Tag.Get("description"); description != "" {
			fieldSchema["description"] = description
		}
		if minLength, err := strconv.Atoi(field.Tag.Get("minLength")); err == nil {
			fieldSchema["minLength"] = minLength
		}
		properties[fieldName] = fieldSchema
		explicit[fieldName] = true
		required = removeName(required, fieldName)
		if field.Type.Kind() != reflect.Ptr && !tag.Omitempty {
			required = append(required, fieldName)
		}
	}
	return properties, required
}

// mergeEmbedded adds the promoted fields of embedded; fields declared on the
// outer struct win.
func (b *builder) mergeEmbedded(embedded reflect.Type, optional bool, properties map[string]any, required *[]string, explicit map[string]bool) {
	if b.visiting[embedded] {
		return
	}
	b.visiting[embedded] = true
	defer delete(b.visiting, embedded)
	promoted, promotedRequired := b.structToProperties(embedded)
	for name, fieldSchema := range promoted {
		if explicit[name] {
			continue
		}
		properties[name] = fieldSchema
	}
	if optional {
		return
	}
	for _, name := range promotedRequired {
		if !explicit[name] {
			*required = append(*required, name)
		}
	}
}

func removeName(names []string, name string) []string {
	for i, candidate := range names {
		if candidate == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
