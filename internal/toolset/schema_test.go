package toolset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type annotatedProvider struct {
	bound *Context
}

func (p *annotatedProvider) BindContext(ctx *Context) {
	p.bound = ctx
}

func (p *annotatedProvider) ToolAnnotations() map[string]ToolAnnotation {
	return map[string]ToolAnnotation{
		"Add": {
			Description: "Add two integers",
			Params: []ParamAnnotation{
				{Name: "a", Description: "First operand"},
				{Name: "b", Description: "Second operand"},
			},
		},
		"Greet": {
			Name: "greeting",
			Params: []ParamAnnotation{
				{Name: "name", Required: Optional()},
			},
		},
	}
}

func (p *annotatedProvider) Add(a, b int) int {
	return a + b
}

func (p *annotatedProvider) Greet(name string) string {
	if name == "" {
		return "Hello, anonymous!"
	}
	return "Hello, " + name + "!"
}

func (p *annotatedProvider) CurrentTime(ctx context.Context) (string, error) {
	return "now", nil
}

type bareProvider struct{}

func (bareProvider) Scale(factor float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	return factor * 2
}

// TooMany has an uninvocable result shape and must be skipped.
func (bareProvider) TooMany() (int, int, error) {
	return 0, 0, nil
}

type failingProvider struct{}

func (failingProvider) Explode() (string, error) {
	return "", errors.New("boom")
}

func findDef(t *testing.T, defs []*ToolDefinition, name string) *ToolDefinition {
	t.Helper()
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("definition %s not found", name)
	return nil
}

func TestBuildAnnotatedProvider(t *testing.T) {
	defs, err := Build(context.Background(), &annotatedProvider{})
	require.NoError(t, err)
	require.Len(t, defs, 3)

	add := findDef(t, defs, "add")
	assert.Equal(t, "Add two integers", add.Description)
	require.Len(t, add.Params, 2)
	assert.Equal(t, "a", add.Params[0].Name)
	assert.Equal(t, KindInteger, add.Params[0].Kind)
	assert.True(t, add.Params[0].Required)
	assert.Equal(t, "b", add.Params[1].Name)

	greet := findDef(t, defs, "greeting")
	require.Len(t, greet.Params, 1)
	assert.Equal(t, "name", greet.Params[0].Name)
	assert.False(t, greet.Params[0].Required)

	// Context parameter is excluded from the schema.
	now := findDef(t, defs, "current_time")
	assert.Empty(t, now.Params)
}

func TestBuildSkipsHookMethods(t *testing.T) {
	defs, err := Build(context.Background(), &annotatedProvider{})
	require.NoError(t, err)
	for _, d := range defs {
		assert.NotEqual(t, "bind_context", d.Name)
		assert.NotEqual(t, "tool_annotations", d.Name)
	}
}

func TestBuildBareProvider(t *testing.T) {
	defs, err := Build(context.Background(), bareProvider{})
	require.NoError(t, err)
	require.Len(t, defs, 1, "TooMany must be skipped")

	scale := defs[0]
	assert.Equal(t, "scale", scale.Name)
	assert.Equal(t, "Tool: scale", scale.Description)
	require.Len(t, scale.Params, 2)
	assert.Equal(t, "arg1", scale.Params[0].Name)
	assert.Equal(t, KindNumber, scale.Params[0].Kind)
	assert.Equal(t, "arg2", scale.Params[1].Name)
	assert.Equal(t, KindBoolean, scale.Params[1].Kind)
	assert.True(t, scale.Params[1].Required)
}

func TestBuildNilProvider(t *testing.T) {
	_, err := Build(context.Background(), nil)
	assert.Error(t, err)
}

func TestInvokeBoundMethod(t *testing.T) {
	defs, err := Build(context.Background(), &annotatedProvider{})
	require.NoError(t, err)

	add := findDef(t, defs, "add")
	result, err := add.Invoke(context.Background(), map[string]any{"a": int64(2), "b": int64(3)})
	require.NoError(t, err)
	assert.Equal(t, 5, result)
}

func TestInvokeOmittedOptionalParam(t *testing.T) {
	defs, err := Build(context.Background(), &annotatedProvider{})
	require.NoError(t, err)

	greet := findDef(t, defs, "greeting")
	result, err := greet.Invoke(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Hello, anonymous!", result)
}

func TestInvokeReturnsToolError(t *testing.T) {
	defs, err := Build(context.Background(), failingProvider{})
	require.NoError(t, err)
	require.Len(t, defs, 1)

	_, err = defs[0].Invoke(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Add":          "add",
		"CurrentTime":  "current_time",
		"GenerateUUID": "generate_uuid",
		"ToUpper":      "to_upper",
		"HTTPGet":      "http_get",
	}
	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "basic-tools", NormalizeID("  Basic-Tools "))
	assert.Equal(t, "", NormalizeID("   "))
}

func TestToolsetFindFirstMatchWins(t *testing.T) {
	first := NewToolDefinition("dup", "first", nil, func(context.Context, map[string]any) (any, error) {
		return "first", nil
	})
	second := NewToolDefinition("dup", "second", nil, func(context.Context, map[string]any) (any, error) {
		return "second", nil
	})
	ts := NewToolset("x", "", "", []*ToolDefinition{first, second})

	found := ts.Find("dup")
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Description)
	assert.Nil(t, ts.Find("missing"))
}

func TestMCPToolSchema(t *testing.T) {
	def := NewToolDefinition("add", "Add two integers", []Param{
		{Name: "a", Kind: KindInteger, Required: true},
		{Name: "b", Kind: KindInteger, Required: true, Description: "Second operand"},
	}, nil)

	tool := def.MCPTool()
	assert.Equal(t, "add", tool.Name)
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.Equal(t, []string{"a", "b"}, tool.InputSchema.Required)

	prop, ok := tool.InputSchema.Properties["b"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "integer", prop["type"])
	assert.Equal(t, "Second operand", prop["description"])
}
