package tools

import (
	"strings"

	"toolhub/internal/toolset"

	"github.com/google/uuid"
)

// DataTools is the built-in text and identifier toolset.
type DataTools struct{}

// NewDataTools creates a data tools provider.
func NewDataTools() *DataTools {
	return &DataTools{}
}

func (d *DataTools) ToolsetInfo() (string, string) {
	return "Data Tools", "Text and identifier tools: UUIDs, word counts, case conversion"
}

func (d *DataTools) ToolAnnotations() map[string]toolset.ToolAnnotation {
	return map[string]toolset.ToolAnnotation{
		"GenerateUUID": {
			Description: "Generates a random UUID",
		},
		"WordCount": {
			Description: "Counts whitespace-separated words in a text",
			Params: []toolset.ParamAnnotation{
				{Name: "text", Description: "Text to count words in"},
			},
		},
		"ToUpper": {
			Description: "Converts a text to upper case",
			Params: []toolset.ParamAnnotation{
				{Name: "text", Description: "Text to convert"},
			},
		},
	}
}

// GenerateUUID returns a new random UUID.
func (d *DataTools) GenerateUUID() string {
	return uuid.NewString()
}

// WordCount counts whitespace-separated words.
func (d *DataTools) WordCount(text string) int {
	return len(strings.Fields(text))
}

// ToUpper converts text to upper case.
func (d *DataTools) ToUpper(text string) string {
	return strings.ToUpper(text)
}
