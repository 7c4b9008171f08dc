package utils

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// NativeToCty converts a Go native value to a cty.Value.
//
// Handles conversion of:
//   - map[string]any → cty.Object
//   - []any → cty.Tuple
//   - Primitive types (string, number, bool, etc.)
//
// This is the inverse of CtyToNative.
func NativeToCty(item any) (cty.Value, error) {
	if item == nil {
		return cty.EmptyObjectVal, nil
	}

	switch t := item.(type) {
	case map[string]any:
		hash := make(map[string]cty.Value)
		for k, v := range t {
			ct, err := NativeToCty(v)
			if err != nil {
				return cty.EmptyObjectVal, err
			}
			hash[k] = ct
		}
		return cty.ObjectVal(hash), nil
	case []any:
		var arr []cty.Value
		for _, v := range t {
			ct, err := NativeToCty(v)
			if err != nil {
				return cty.EmptyObjectVal, err
			}
			arr = append(arr, ct)
		}
		return cty.TupleVal(arr), nil
	default:
	}
	typ, err := gocty.ImpliedType(item)
	if err != nil {
		return cty.EmptyObjectVal, err
	}
	return gocty.ToCtyValue(item, typ)
}

// CtyNumberToNative converts a cty number to the smallest native Go type
// that holds it exactly: int, then int64, then float32, then float64.
func CtyNumberToNative(val cty.Value) (any, error) {
	v := val.AsBigFloat()
	if _, accuracy := v.Int64(); accuracy == big.Exact || accuracy == big.Above {
		var x int64
		err := gocty.FromCtyValue(val, &x)
		if x > 0x7FFFFFFF || x < -0x80000000 {
			return x, err
		}
		return int(x), err
	} else if _, accuracy := v.Int(nil); accuracy == big.Exact || accuracy == big.Above {
		var x int
		err := gocty.FromCtyValue(val, &x)
		return x, err
	} else if _, accuracy := v.Float32(); accuracy == big.Exact || accuracy == big.Above {
		var x float32
		err := gocty.FromCtyValue(val, &x)
		return x, err
	}
	var x float64
	err := gocty.FromCtyValue(val, &x)
	return x, err
}

// CtyToNative converts a cty.Value to a Go native type.
//
// Conversion rules:
//   - cty.String → string
//   - cty.Number → int, int64, float32, or float64 (auto-detected)
//   - cty.Bool → bool
//   - cty.Object/Map → map[string]any
//   - cty.List/Tuple/Set → []any
//   - cty.Null → nil
//
// This is the inverse of NativeToCty.
func CtyToNative(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch ty {
	case cty.String:
		var v string
		err := gocty.FromCtyValue(val, &v)
		return v, err
	case cty.Number:
		return CtyNumberToNative(val)
	case cty.Bool:
		var v bool
		err := gocty.FromCtyValue(val, &v)
		return v, err
	default:
	}

	switch {
	case ty.IsObjectType(), ty.IsMapType():
		var u map[string]any
		for k, v := range val.AsValueMap() {
			x, err := CtyToNative(v)
			if err != nil {
				return nil, err
			}
			if x == nil {
				continue
			}
			if u == nil {
				u = make(map[string]any)
			}
			u[k] = x
		}
		return u, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		var u []any
		for _, v := range val.AsValueSlice() {
			x, err := CtyToNative(v)
			if err != nil {
				return nil, err
			}
			if x == nil {
				continue
			}
			u = append(u, x)
		}
		return u, nil
	default:
	}

	return nil, fmt.Errorf("assumed primitive value %#v not implemented", val)
}

// CanonicalNumber maps a float64 onto int or int64 when it is integral,
// by way of cty, so that 3.0 comes back as int 3 and 3.5 stays float64.
func CanonicalNumber(f float64) any {
	v, err := CtyNumberToNative(cty.NumberFloatVal(f))
	if err != nil {
		return f
	}
	if _, ok := v.(float32); ok {
		return f
	}
	return v
}
