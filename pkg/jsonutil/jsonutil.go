// Package jsonutil wraps github.com/go-json-experiment/json behind the
// stdlib-shaped API used for numtest's machine-readable reports.
package jsonutil

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the JSON encoding of v indented with indent.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// Unmarshal parses the JSON-encoded data into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
