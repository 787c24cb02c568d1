package twidge

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one labelled value of a form.
type Field struct {
	Label string
	Value string
}

// Values holds the result of a form: its fields' values in label order.
// It marshals to JSON and YAML as a mapping that keeps that order.
type Values []Field

// Get returns the value for label.
func (v Values) Get(label string) (string, bool) {
	for _, f := range v {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// Labels returns the labels in order.
func (v Values) Labels() []string {
	labels := make([]string, len(v))
	for i, f := range v {
		labels[i] = f.Label
	}
	return labels
}

// Map returns the values keyed by label.
func (v Values) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, f := range v {
		m[f.Label] = f.Value
	}
	return m
}

// String returns "label=value" pairs separated by newlines.
func (v Values) String() string {
	var sb strings.Builder
	for i, f := range v {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Label)
		sb.WriteByte('=')
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// MarshalJSON encodes the values as a JSON object in label order.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the values as a YAML mapping in label order.
func (v Values) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range v {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Label},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return node, nil
}
