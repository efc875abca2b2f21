package registry

import (
	"context"
	"fmt"
	"strconv"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// CallResult is the envelope returned for every tool invocation. Tool
// failures set IsError and Message instead of propagating an error, so a
// misbehaving tool never looks like a broken server.
type CallResult struct {
	IsError bool   `json:"isError"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

func okResult(v any) *CallResult {
	return &CallResult{Result: v}
}

func errorResult(err error) *CallResult {
	return &CallResult{IsError: true, Message: err.Error()}
}

// invoke finds the named tool in the toolset, coerces the raw arguments to
// the declared parameter kinds and calls the bound handler. A panic inside
// the tool is recovered and reported like any other tool failure.
func invoke(ctx context.Context, ts *toolset.Toolset, name string, raw map[string]any) (result *CallResult) {
	def := ts.Find(name)
	if def == nil {
		return errorResult(fmt.Errorf("%w: %s in toolset %s", toolset.ErrToolNotFound, name, ts.ID))
	}

	args, err := coerceArguments(def, raw)
	if err != nil {
		return errorResult(err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := &toolset.InvocationError{Tool: name, Err: fmt.Errorf("panic: %v", r)}
			logging.Error("Registry", err, "Tool %s panicked", name)
			result = errorResult(err)
		}
	}()

	out, err := def.Invoke(ctx, args)
	if err != nil {
		logging.Debug("Registry", "Tool %s returned error: %v", name, err)
		return errorResult(&toolset.InvocationError{Tool: name, Err: err})
	}
	return okResult(out)
}

// coerceArguments validates raw arguments against the declared parameters.
// Unknown arguments are dropped; missing required parameters fail; values
// are converted to the canonical Go type of their declared kind.
func coerceArguments(def *toolset.ToolDefinition, raw map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(def.Params))
	for _, p := range def.Params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, &toolset.ArgumentError{Tool: def.Name, Param: p.Name, Reason: "required argument missing"}
			}
			continue
		}
		coerced, err := coerceValue(v, p.Kind)
		if err != nil {
			return nil, &toolset.ArgumentError{Tool: def.Name, Param: p.Name, Reason: err.Error()}
		}
		args[p.Name] = coerced
	}
	return args, nil
}

// coerceValue converts a decoded JSON value to the canonical type for the
// declared kind: int64, float64, bool or string. JSON numbers always decode
// as float64, and clients routinely send numbers as strings, so both forms
// are accepted for the numeric kinds.
func coerceValue(v any, kind toolset.Kind) (any, error) {
	switch kind {
	case toolset.KindInteger:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case float64:
			return int64(n), nil
		case float32:
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as integer", n)
			}
			return i, nil
		}
		return nil, fmt.Errorf("cannot convert %T to integer", v)

	case toolset.KindNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as number", n)
			}
			return f, nil
		}
		return nil, fmt.Errorf("cannot convert %T to number", v)

	case toolset.KindBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as boolean", b)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("cannot convert %T to boolean", v)

	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", v), nil
	}
}
