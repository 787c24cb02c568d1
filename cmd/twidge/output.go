package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// result is a widget's value prepared for printing.
type result struct {
	text  string // Plain text rendering
	value any    // Value for structured formats
}

// formats maps a format name to its writer.
var formats = map[string]func(io.Writer, result) error{
	"text": writeText,
	"json": writeJSON,
	"yaml": writeYAML,
}

// writeResult prints r in the named format.
func writeResult(w io.Writer, format string, r result) error {
	write, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}
	return write(w, r)
}

func writeText(w io.Writer, r result) error {
	if r.text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, r.text)
	return err
}

func writeJSON(w io.Writer, r result) error {
	return json.NewEncoder(w).Encode(r.value)
}

func writeYAML(w io.Writer, r result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.value); err != nil {
		return err
	}
	return enc.Close()
}
