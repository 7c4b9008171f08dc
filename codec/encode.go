package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/lexer"
	"github.com/genelet/skyline/utils"
)

// ToHCL renders a nested native value as HCL source text, the inverse of
// Parse. The input is the shape Parse and FromJSON produce: an
// *utils.OrderedMap (or plain map[string]any) at the top level.
//
// Objects whose values are all objects become labeled blocks, up to two
// label levels deep; arrays of objects repeat a block; FunctionKey maps
// re-render as calls; everything else renders as an attribute.
func ToHCL(value any) ([]byte, error) {
	m, err := toOrdered(value)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := encodeBody(&sb, m, 0); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// toOrdered accepts either map flavor at body position. Plain maps get
// sorted keys for deterministic output.
func toOrdered(value any) (*utils.OrderedMap, error) {
	switch t := value.(type) {
	case *utils.OrderedMap:
		return t, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := utils.NewOrderedMap()
		for _, k := range keys {
			m.Set(k, t[k])
		}
		return m, nil
	default:
		return nil, fmt.Errorf("expected a map at body position, got %T", value)
	}
}

func encodeBody(sb *strings.Builder, m *utils.OrderedMap, level int) error {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if err := encodeEntry(sb, key, v, level); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(sb *strings.Builder, key string, v any, level int) error {
	switch t := v.(type) {
	case *utils.OrderedMap, map[string]any:
		m, err := toOrdered(t)
		if err != nil {
			return err
		}
		if isFunctionMap(m) || !blockKeysOK(m, 0) {
			return encodeAttribute(sb, key, m, level)
		}
		return encodeBlock(sb, key, m, 0, level)
	case []any:
		if isBlockList(t) && blockListOK(t) {
			for _, item := range t {
				m, err := toOrdered(item)
				if err != nil {
					return err
				}
				if err := encodeBlock(sb, key, m, 0, level); err != nil {
					return err
				}
			}
			return nil
		}
		return encodeAttribute(sb, key, t, level)
	case string:
		if strings.Contains(t, "\n") {
			delim := ast.HeredocDelimiter(t)
			sb.WriteString(indent(level))
			sb.WriteString(key)
			sb.WriteString(" = <<")
			sb.WriteString(delim)
			sb.WriteByte('\n')
			sb.WriteString(t)
			sb.WriteByte('\n')
			sb.WriteString(delim)
			sb.WriteByte('\n')
			return nil
		}
		return encodeAttribute(sb, key, t, level)
	default:
		return encodeAttribute(sb, key, t, level)
	}
}

func encodeAttribute(sb *strings.Builder, key string, v any, level int) error {
	text, err := encodeValue(v, level)
	if err != nil {
		return err
	}
	sb.WriteString(indent(level))
	sb.WriteString(key)
	sb.WriteString(" = ")
	sb.WriteString(text)
	sb.WriteByte('\n')
	return nil
}

// encodeBlock writes one block, lifting up to two levels of all-object
// nesting into string labels. Deeper nesting stays a block body.
func encodeBlock(sb *strings.Builder, header string, m *utils.OrderedMap, depth, level int) error {
	if depth < 2 && isNestedMap(m) {
		for _, label := range m.Keys() {
			v, _ := m.Get(label)
			child, err := toOrdered(v)
			if err != nil {
				return err
			}
			if err := encodeBlock(sb, header+" "+strconv.Quote(label), child, depth+1, level); err != nil {
				return err
			}
		}
		return nil
	}

	sb.WriteString(indent(level))
	sb.WriteString(header)
	if m.Len() == 0 {
		sb.WriteString(" {}\n")
		return nil
	}
	sb.WriteString(" {\n")
	if err := encodeBody(sb, m, level+1); err != nil {
		return err
	}
	sb.WriteString(indent(level))
	sb.WriteString("}\n")
	return nil
}

// encodeValue renders a value in attribute position.
func encodeValue(v any, level int) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(t), nil
	case bool:
		return fmt.Sprintf("%t", t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32, float64:
		f, _ := v.(float64)
		if g, ok := v.(float32); ok {
			f = float64(g)
		}
		switch n := utils.CanonicalNumber(f).(type) {
		case int, int64:
			return fmt.Sprintf("%d", n), nil
		default:
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case []any:
		items := make([]string, len(t))
		for i, item := range t {
			s, err := encodeValue(item, level)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	case *utils.OrderedMap, map[string]any:
		m, err := toOrdered(t)
		if err != nil {
			return "", err
		}
		if isFunctionMap(m) {
			return encodeCall(m, level)
		}
		return encodeObject(m, level)
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func encodeCall(m *utils.OrderedMap, level int) (string, error) {
	nameVal, _ := m.Get(FunctionKey)
	name, ok := nameVal.(string)
	if !ok {
		return "", fmt.Errorf("%s must name a function, got %v", FunctionKey, nameVal)
	}
	argsVal, _ := m.Get(ArgsKey)
	args, _ := argsVal.([]any)
	items := make([]string, len(args))
	for i, arg := range args {
		s, err := encodeValue(arg, level)
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return name + "(" + strings.Join(items, ", ") + ")", nil
}

func encodeObject(m *utils.OrderedMap, level int) (string, error) {
	if m.Len() == 0 {
		return "{}", nil
	}
	items := make([]string, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		s, err := encodeValue(v, level)
		if err != nil {
			return "", err
		}
		items = append(items, objectKey(k)+" = "+s)
	}
	return "{ " + strings.Join(items, ", ") + " }", nil
}

// objectKey quotes object keys that would not lex back as an identifier.
func objectKey(k string) string {
	if lexer.IsIdentifier(k) {
		return k
	}
	return strconv.Quote(k)
}

// blockKeysOK reports whether a map can render as a block. Keys consumed
// as block labels may be any string since labels are quoted, but keys at
// body position become attribute or block names and must lex as
// identifiers; maps that fail render as inline object attributes instead.
func blockKeysOK(m *utils.OrderedMap, depth int) bool {
	if depth < 2 && isNestedMap(m) {
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			child, err := toOrdered(v)
			if err != nil || !blockKeysOK(child, depth+1) {
				return false
			}
		}
		return true
	}
	for _, k := range m.Keys() {
		if !lexer.IsIdentifier(k) {
			return false
		}
	}
	return true
}

func blockListOK(items []any) bool {
	for _, item := range items {
		m, err := toOrdered(item)
		if err != nil || !blockKeysOK(m, 0) {
			return false
		}
	}
	return true
}

// isFunctionMap reports whether m is the tagged shape of a function call.
func isFunctionMap(m *utils.OrderedMap) bool {
	v, ok := m.Get(FunctionKey)
	if !ok {
		return false
	}
	_, ok = v.(string)
	return ok
}

// isNestedMap reports whether every value of m is itself a body map,
// which is what turns keys into block labels.
func isNestedMap(m *utils.OrderedMap) bool {
	if m.Len() == 0 {
		return false
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		switch t := v.(type) {
		case *utils.OrderedMap:
			if isFunctionMap(t) {
				return false
			}
		case map[string]any:
		default:
			return false
		}
	}
	return true
}

// isBlockList reports whether a slice repeats block bodies rather than
// holding attribute items.
func isBlockList(items []any) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		switch t := item.(type) {
		case *utils.OrderedMap:
			if isFunctionMap(t) {
				return false
			}
		case map[string]any:
		default:
			return false
		}
	}
	return true
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}
