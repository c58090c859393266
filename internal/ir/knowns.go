package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes an object of numbers. A null value is an error
// rather than a zero: {"v0": null} means the caller sent no number.
// A null object leaves k unchanged.
func (k *Knowns) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Knowns, len(raw))
	for name, v := range raw {
		if v == nil {
			return fmt.Errorf("knowns[%q] must be a number, got null", name)
		}
		out[name] = *v
	}
	*k = out
	return nil
}

// UnmarshalYAML decodes a mapping of numbers with the same null rule as
// UnmarshalJSON. An empty value ("v0:") is null.
func (k *Knowns) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: knowns must be a mapping", node.Line)
	}

	out := make(Knowns, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.ShortTag() == "!!null" {
			return fmt.Errorf("line %d: knowns[%q] must be a number, got null", val.Line, key.Value)
		}
		var f float64
		if err := val.Decode(&f); err != nil {
			return fmt.Errorf("line %d: knowns[%q]: %w", val.Line, key.Value, err)
		}
		out[key.Value] = f
	}
	*k = out
	return nil
}
