// Package codec converts between HCL source text and nested native
// values, with JSON as the interchange form.
//
// Parse collapses a document into ordered maps, slices and scalars:
//
//	value, err := codec.Parse([]byte(`svc "http" "web" { listen = "127.0.0.1:8080" }`))
//	jsn, err := codec.ToJSON(value, false)
//	// {"svc":{"http":{"web":{"listen":"127.0.0.1:8080"}}}}
//
// FromJSON is the inverse, rendering a JSON object back to HCL text.
//
// Constructs without a JSON analogue collapse to tagged or literal
// shapes instead of being evaluated: function calls become
// {"__function__": name, "__args__": [...]}, while references,
// interpolated strings and operator expressions become their literal
// source text as a string.
//
// Blocks map to JSON by label cardinality. Repeated zero-label blocks
// become an array of bodies, unique label paths nest as maps (two
// labels nest twice), and duplicate label paths fall back to an ordered
// array of single-key maps. Key order always follows source order.
package codec
