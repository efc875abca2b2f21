package toolset

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"toolhub/pkg/logging"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// hookMethods are part of the provider contract, not tools.
var hookMethods = map[string]bool{
	"BindContext":     true,
	"ToolAnnotations": true,
	"ToolsetInfo":     true,
	"ToolDefinitions": true,
}

// Build derives tool definitions from a provider instance.
//
// Providers implementing DefinitionProvider supply their definitions
// directly. For everything else, Build reflects over the instance's
// exported methods: each eligible method becomes one tool, its parameters
// become the tool's schema in declaration order, and a bound closure is
// captured for invocation. context.Context parameters are excluded from
// the schema and filled from the invocation context at call time.
//
// Parameter kinds map to {string, integer, number, boolean}; unrecognized
// types fall back to string. Parameters are required unless an annotation
// says otherwise. Methods with signatures that cannot be invoked (more than
// two results, or a second result that is not error) are skipped.
func Build(ctx context.Context, instance any) ([]*ToolDefinition, error) {
	if instance == nil {
		return nil, fmt.Errorf("cannot build schema for nil provider")
	}

	if dp, ok := instance.(DefinitionProvider); ok {
		return dp.ToolDefinitions(ctx)
	}

	var annotations map[string]ToolAnnotation
	if a, ok := instance.(ToolAnnotator); ok {
		annotations = a.ToolAnnotations()
	}

	v := reflect.ValueOf(instance)
	t := v.Type()

	var defs []*ToolDefinition
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if hookMethods[method.Name] {
			continue
		}

		def, ok := buildToolDefinition(v.Method(i), method.Name, annotations[method.Name])
		if !ok {
			logging.Debug("Schema", "Skipping method %s.%s: unsupported signature", t.String(), method.Name)
			continue
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// buildToolDefinition creates one definition from a bound method value.
func buildToolDefinition(fn reflect.Value, methodName string, annotation ToolAnnotation) (*ToolDefinition, bool) {
	ft := fn.Type()

	if ft.IsVariadic() || !invocableResults(ft) {
		return nil, false
	}

	name := annotation.Name
	if name == "" {
		name = snakeCase(methodName)
	}
	description := annotation.Description
	if description == "" {
		description = "Tool: " + name
	}

	// argSlots[i] describes method argument i: either the context slot or
	// the index of its schema parameter.
	type slot struct {
		isContext bool
		paramIdx  int
		typ       reflect.Type
	}

	var params []Param
	slots := make([]slot, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		in := ft.In(i)
		if in == contextType {
			slots[i] = slot{isContext: true}
			continue
		}

		p := Param{
			Name:     fmt.Sprintf("arg%d", len(params)+1),
			Kind:     kindOf(in),
			Required: true,
		}
		if len(annotation.Params) > len(params) {
			pa := annotation.Params[len(params)]
			if pa.Name != "" {
				p.Name = pa.Name
			}
			p.Description = pa.Description
			if pa.Required != nil {
				p.Required = *pa.Required
			}
		}
		slots[i] = slot{paramIdx: len(params), typ: in}
		params = append(params, p)
	}

	paramsCopy := params
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		in := make([]reflect.Value, len(slots))
		for i, s := range slots {
			if s.isContext {
				in[i] = reflect.ValueOf(ctx)
				continue
			}
			p := paramsCopy[s.paramIdx]
			rv, err := reflectArg(args[p.Name], s.typ)
			if err != nil {
				return nil, &ArgumentError{Tool: name, Param: p.Name, Reason: err.Error()}
			}
			in[i] = rv
		}

		out := fn.Call(in)
		return splitResults(out)
	}

	return NewToolDefinition(name, description, params, handler), true
}

// invocableResults reports whether the function's result shape can be
// mapped to (result, error).
func invocableResults(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 0, 1:
		return true
	case 2:
		return ft.Out(1) == errorType
	default:
		return false
	}
}

// splitResults maps reflect call results to (result, error).
func splitResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			if err, _ := out[0].Interface().(error); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return out[0].Interface(), nil
	default:
		var err error
		if e, _ := out[1].Interface().(error); e != nil {
			err = e
		}
		return out[0].Interface(), err
	}
}

// kindOf maps a Go type to a schema kind, with string as the fallback for
// unrecognized types.
func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Bool:
		return KindBoolean
	default:
		return KindString
	}
}

// reflectArg converts a coerced argument value to the method's declared
// parameter type. A nil value (omitted optional parameter) becomes the zero
// value.
func reflectArg(v any, target reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(target), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", v, target)
}

// snakeCase converts an exported Go method name to its exposed tool name,
// e.g. CurrentTime -> current_time, GenerateUUID -> generate_uuid.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
