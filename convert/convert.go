package convert

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/genelet/skyline/codec"
	"github.com/genelet/skyline/utils"
)

// UnmarshalFunc is a function that unmarshals data into a target object.
type UnmarshalFunc func([]byte, any) error

// MarshalFunc is a function that marshals an object into bytes.
type MarshalFunc func(any) ([]byte, error)

// convertFormat is a generic converter that unmarshals from one format and
// marshals to another. Key order survives the trip through *utils.OrderedMap.
func convertFormat(raw []byte, unmarshal UnmarshalFunc, marshal MarshalFunc) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	obj := utils.NewOrderedMap()
	if err := unmarshal(raw, obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	result, err := marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return result, nil
}

// hclUnmarshal parses HCL source and fills v, which must be the
// *utils.OrderedMap convertFormat passes in.
func hclUnmarshal(data []byte, v any) error {
	m, ok := v.(*utils.OrderedMap)
	if !ok {
		return fmt.Errorf("HCL conversion target must be *utils.OrderedMap, got %T", v)
	}
	value, err := codec.Parse(data)
	if err != nil {
		return err
	}
	for _, k := range value.Keys() {
		item, _ := value.Get(k)
		m.Set(k, item)
	}
	return nil
}

func hclMarshal(v any) ([]byte, error) {
	return codec.ToHCL(v)
}

func jsonMarshal(v any) ([]byte, error) {
	return codec.ToJSON(v, true)
}

// JSONToYAML converts JSON data to YAML format.
//
// The conversion is lossless for basic data types (strings, numbers, bools,
// arrays, and objects) and preserves object key order.
func JSONToYAML(raw []byte) ([]byte, error) {
	return convertFormat(raw, json.Unmarshal, yaml.Marshal)
}

// YAMLToJSON converts YAML data to JSON format.
func YAMLToJSON(raw []byte) ([]byte, error) {
	return convertFormat(raw, yaml.Unmarshal, jsonMarshal)
}

// JSONToHCL converts JSON data to HCL format.
//
// Objects whose values are all objects become labeled blocks; arrays of
// objects become repeated blocks; everything else becomes an attribute.
func JSONToHCL(raw []byte) ([]byte, error) {
	return convertFormat(raw, json.Unmarshal, hclMarshal)
}

// HCLToJSON converts HCL data to JSON format.
//
// Function calls become tagged objects; references and interpolations
// become their literal source text. Expressions are never evaluated.
func HCLToJSON(raw []byte) ([]byte, error) {
	return convertFormat(raw, hclUnmarshal, jsonMarshal)
}

// YAMLToHCL converts YAML data to HCL format.
func YAMLToHCL(raw []byte) ([]byte, error) {
	return convertFormat(raw, yaml.Unmarshal, hclMarshal)
}

// HCLToYAML converts HCL data to YAML format.
func HCLToYAML(raw []byte) ([]byte, error) {
	return convertFormat(raw, hclUnmarshal, yaml.Marshal)
}
