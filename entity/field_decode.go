package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes a JSON object keeping key order. Numbers are kept as
// json.Number so their text is signed exactly as written.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be a JSON object")
	}

	*m = FieldMap{values: make(map[string]Value)}
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", token)
		}
		var value any
		if err = decoder.Decode(&value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		m.Set(name, value)
	}
	if _, err = decoder.Token(); err != nil {
		return err
	}
	return nil
}

// UnmarshalYAML decodes a YAML mapping keeping key order.
func (m *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	*m = FieldMap{values: make(map[string]Value)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind == yaml.SequenceNode {
			items := make([]any, 0, len(value.Content))
			for _, item := range value.Content {
				v, err := yamlScalar(item)
				if err != nil {
					return err
				}
				items = append(items, v)
			}
			m.Set(key.Value, items)
			continue
		}
		v, err := yamlScalar(value)
		if err != nil {
			return err
		}
		m.Set(key.Value, v)
	}
	return nil
}

func yamlScalar(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			return json.Number(node.Value), nil
		}
		return node.Value, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!null":
		return nil, nil
	default:
		return node.Value, nil
	}
}
