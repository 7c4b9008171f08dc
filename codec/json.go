package codec

import (
	"encoding/json"

	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/utils"
)

// ToJSON encodes a decoded value as JSON, compact by default or indented
// when pretty is true. Object key order follows insertion order.
func ToJSON(value any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(value, "", "  ")
	}
	return json.Marshal(value)
}

// DocumentToJSON collapses a parsed document and encodes it as JSON.
func DocumentToJSON(doc *ast.Document, pretty bool) ([]byte, error) {
	return ToJSON(Decode(doc), pretty)
}

// FromJSON converts a JSON object to HCL source text, the inverse of
// parsing followed by ToJSON.
func FromJSON(data []byte) ([]byte, error) {
	m := utils.NewOrderedMap()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return ToHCL(m)
}
