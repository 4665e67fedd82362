package report

import (
	"encoding/json"
)

// JSONFormatter outputs a Result as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the Result as indented JSON.
func (f *JSONFormatter) Format(result Result) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal result"}`
	}
	return string(data)
}
