package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Configuration bodies are order-sensitive, so plain Go maps would
// scramble keys on every round trip; OrderedMap keeps JSON and YAML
// output in the order the keys were first set.
//
// The zero value is not usable; call NewOrderedMap.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set stores value under key. A key set for the first time goes to the
// end of the order; overwriting keeps the original position.
func (m *OrderedMap) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value under key and whether it is present.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key and its value, preserving the order of the rest.
func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is shared; do not
// modify it.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Plain converts the ordered map, recursively, into plain Go maps and
// slices. Order is lost; useful for comparisons.
func (m *OrderedMap) Plain() map[string]any {
	hash := make(map[string]any)
	for _, k := range m.keys {
		hash[k] = plainValue(m.values[k])
	}
	return hash
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *OrderedMap:
		return t.Plain()
	case []any:
		arr := make([]any, len(t))
		for i, item := range t {
			arr[i] = plainValue(item)
		}
		return arr
	default:
		return v
	}
}

// MarshalJSON writes the map as a JSON object with keys in insertion order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order and decoding nested
// objects as *OrderedMap. Integral numbers come back as int, others as
// float64.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	return m.decodeObject(dec)
}

func (m *OrderedMap) decodeObject(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return err
		}
		m.Set(key, val)
	}
	// consume the closing brace
	_, err := dec.Token()
	return err
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			child := NewOrderedMap()
			if err := child.decodeObject(dec); err != nil {
				return nil, err
			}
			return child, nil
		case '[':
			var arr []any
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return CanonicalNumber(f), nil
	default:
		return tok, nil
	}
}

// MarshalYAML renders the map as a YAML mapping with keys in insertion order.
func (m *OrderedMap) MarshalYAML() (any, error) {
	return m.yamlNode()
}

func (m *OrderedMap) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode, err := yamlValueNode(m.values[k])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

func yamlValueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *OrderedMap:
		return t.yamlNode()
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := yamlValueNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// UnmarshalYAML reads a YAML mapping, keeping key order and decoding
// nested mappings as *OrderedMap.
func (m *OrderedMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected YAML mapping, got %v", value.Kind)
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		val, err := decodeYAMLNode(value.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(value.Content[i].Value, val)
	}
	return nil
}

func decodeYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		child := NewOrderedMap()
		if err := child.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return child, nil
	case yaml.SequenceNode:
		var arr []any
		for _, item := range node.Content {
			v, err := decodeYAMLNode(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
