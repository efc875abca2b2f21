package tools

import (
	"fmt"
	"time"

	"toolhub/internal/toolset"
)

// BasicTools is the built-in general purpose toolset: a calculator, a
// greeting and a clock.
type BasicTools struct {
	shared *toolset.Context
}

// NewBasicTools creates a basic tools provider.
func NewBasicTools() *BasicTools {
	return &BasicTools{}
}

func (b *BasicTools) BindContext(shared *toolset.Context) {
	b.shared = shared
}

func (b *BasicTools) ToolsetInfo() (string, string) {
	return "Basic Tools", "General purpose tools: calculator, greeting and clock"
}

func (b *BasicTools) ToolAnnotations() map[string]toolset.ToolAnnotation {
	return map[string]toolset.ToolAnnotation{
		"Calculator": {
			Description: "Performs basic arithmetic on two numbers",
			Params: []toolset.ParamAnnotation{
				{Name: "operation", Description: "One of add, subtract, multiply, divide"},
				{Name: "num1", Description: "First operand"},
				{Name: "num2", Description: "Second operand"},
			},
		},
		"Greeting": {
			Description: "Returns a personalized greeting",
			Params: []toolset.ParamAnnotation{
				{Name: "name", Description: "Name of the person to greet", Required: toolset.Optional()},
			},
		},
		"CurrentTime": {
			Description: "Returns the current server time in RFC 3339 format",
		},
	}
}

// Calculator performs one arithmetic operation on two numbers.
func (b *BasicTools) Calculator(operation string, num1, num2 float64) (string, error) {
	var result float64
	switch operation {
	case "add":
		result = num1 + num2
	case "subtract":
		result = num1 - num2
	case "multiply":
		result = num1 * num2
	case "divide":
		if num2 == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = num1 / num2
	default:
		return "", fmt.Errorf("unknown operation: %s", operation)
	}
	return fmt.Sprintf("%g %s %g = %g", num1, operation, num2, result), nil
}

// Greeting returns a greeting for the given name.
func (b *BasicTools) Greeting(name string) string {
	if name == "" {
		name = "there"
	}
	greeting := fmt.Sprintf("Hello, %s!", name)
	if b.shared != nil {
		if env, ok := b.shared.Value("environment"); ok {
			greeting = fmt.Sprintf("%s (from %s)", greeting, env)
		}
	}
	return greeting
}

// CurrentTime returns the current server time.
func (b *BasicTools) CurrentTime() string {
	return time.Now().Format(time.RFC3339)
}
