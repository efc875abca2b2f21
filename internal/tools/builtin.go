// Package tools contains the provider implementations compiled into the
// binary and the tables that make them resolvable by id.
package tools

import "toolhub/internal/loader"

// BuiltinConstructors returns the id -> constructors table for the builtin
// loader strategy. Several aliases map to the same providers; "all" and
// "both" resolve every builtin provider into one combined toolset.
func BuiltinConstructors() map[string][]loader.Constructor {
	basic := loader.Constructor(func() any { return NewBasicTools() })
	data := loader.Constructor(func() any { return NewDataTools() })

	return map[string][]loader.Constructor{
		"basic-tools": {basic},
		"basic":       {basic},
		"instance1":   {basic},
		"data-tools":  {data},
		"instance2":   {data},
		"all":         {basic, data},
		"both":        {basic, data},
	}
}

// BuiltinNamespace exposes the builtin provider types for namespace-derived
// resolution, so ids like "basic-tools" resolve even without a table entry.
func BuiltinNamespace() loader.Namespace {
	return loader.Namespace{
		Name: "builtin",
		Types: map[string]loader.Constructor{
			"BasicTools": func() any { return NewBasicTools() },
			"DataTools":  func() any { return NewDataTools() },
		},
	}
}
