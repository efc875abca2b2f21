package tools

import (
	"context"
	"testing"

	"toolhub/internal/loader"
	"toolhub/internal/toolset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefs(t *testing.T, provider any) map[string]*toolset.ToolDefinition {
	t.Helper()
	defs, err := toolset.Build(context.Background(), provider)
	require.NoError(t, err)

	byName := make(map[string]*toolset.ToolDefinition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return byName
}

func TestBasicToolsSchema(t *testing.T) {
	defs := buildDefs(t, NewBasicTools())
	require.Len(t, defs, 3)

	calc := defs["calculator"]
	require.NotNil(t, calc)
	require.Len(t, calc.Params, 3)
	assert.Equal(t, "operation", calc.Params[0].Name)
	assert.Equal(t, toolset.KindString, calc.Params[0].Kind)
	assert.Equal(t, "num1", calc.Params[1].Name)
	assert.Equal(t, toolset.KindNumber, calc.Params[1].Kind)
	assert.True(t, calc.Params[1].Required)

	greet := defs["greeting"]
	require.NotNil(t, greet)
	require.Len(t, greet.Params, 1)
	assert.False(t, greet.Params[0].Required)

	now := defs["current_time"]
	require.NotNil(t, now)
	assert.Empty(t, now.Params)
}

func TestCalculator(t *testing.T) {
	b := NewBasicTools()

	out, err := b.Calculator("add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "2 add 3 = 5", out)

	out, err = b.Calculator("divide", 10, 4)
	require.NoError(t, err)
	assert.Equal(t, "10 divide 4 = 2.5", out)

	_, err = b.Calculator("divide", 1, 0)
	assert.ErrorContains(t, err, "division by zero")

	_, err = b.Calculator("modulo", 1, 2)
	assert.ErrorContains(t, err, "unknown operation")
}

func TestGreetingUsesSharedContext(t *testing.T) {
	b := NewBasicTools()
	assert.Equal(t, "Hello, Ada!", b.Greeting("Ada"))
	assert.Equal(t, "Hello, there!", b.Greeting(""))

	shared := toolset.NewContext()
	shared.Set("environment", "staging")
	b.BindContext(shared)
	assert.Equal(t, "Hello, Ada! (from staging)", b.Greeting("Ada"))
}

func TestDataToolsSchema(t *testing.T) {
	defs := buildDefs(t, NewDataTools())
	require.Len(t, defs, 3)

	assert.NotNil(t, defs["generate_uuid"])
	assert.NotNil(t, defs["word_count"])
	assert.NotNil(t, defs["to_upper"])
}

func TestDataTools(t *testing.T) {
	d := NewDataTools()

	first := d.GenerateUUID()
	second := d.GenerateUUID()
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)

	assert.Equal(t, 4, d.WordCount("one  two\tthree\nfour"))
	assert.Equal(t, 0, d.WordCount("   "))

	assert.Equal(t, "LOUD", d.ToUpper("loud"))
}

func TestBuiltinTableResolvesAliases(t *testing.T) {
	l := loader.New(nil, loader.NewBuiltinStrategy(BuiltinConstructors()))

	for _, id := range []string{"basic-tools", "basic", "instance1"} {
		ts, err := l.Load(context.Background(), id)
		require.NoError(t, err, "id %s", id)
		assert.Equal(t, "Basic Tools", ts.Name)
		assert.Len(t, ts.Tools, 3)
	}

	ts, err := l.Load(context.Background(), "data-tools")
	require.NoError(t, err)
	assert.Equal(t, "Data Tools", ts.Name)
	assert.Len(t, ts.Tools, 3)
}

func TestBuiltinTableCombinedAlias(t *testing.T) {
	l := loader.New(nil, loader.NewBuiltinStrategy(BuiltinConstructors()))

	ts, err := l.Load(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, ts.Tools, 6)
	assert.NotNil(t, ts.Find("calculator"))
	assert.NotNil(t, ts.Find("generate_uuid"))
}

func TestBuiltinNamespaceResolution(t *testing.T) {
	l := loader.New(nil, loader.NewNamespaceStrategy(BuiltinNamespace()))

	ts, err := l.Load(context.Background(), "basic-tools")
	require.NoError(t, err)
	assert.Equal(t, "Basic Tools", ts.Name)

	ts, err = l.Load(context.Background(), "data-tools")
	require.NoError(t, err)
	assert.Equal(t, "Data Tools", ts.Name)
}
