package codec

import (
	"sort"
	"strings"

	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/parser"
	"github.com/genelet/skyline/utils"
)

// Parse reads HCL source text and collapses it to nested native values:
// *utils.OrderedMap for bodies and objects, []any for arrays and repeated
// blocks, string/int/float64/bool/nil for scalars. Function calls become a
// tagged map under FunctionKey/ArgsKey; references, interpolations and
// operator expressions become their literal source text. Nothing is
// evaluated.
func Parse(source []byte) (*utils.OrderedMap, error) {
	doc, err := parser.Parse(source, fragmentName())
	if err != nil {
		return nil, err
	}
	return Decode(doc), nil
}

// Decode collapses an already parsed document.
func Decode(doc *ast.Document) *utils.OrderedMap {
	return decodeBody(doc.Body)
}

// decodeBody walks attributes and blocks in source order. All blocks of a
// type are grouped under that type's key at its first appearance.
func decodeBody(body *ast.Body) *utils.OrderedMap {
	type entry struct {
		start int
		attr  *ast.Attribute
		block *ast.Block
	}
	var entries []entry
	for _, attr := range body.Attributes {
		entries = append(entries, entry{start: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		entries = append(entries, entry{start: block.SrcRange.Start.Byte, block: block})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].start < entries[j].start })

	out := utils.NewOrderedMap()
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.attr != nil {
			out.Set(e.attr.Name, decodeValue(e.attr.Value))
			continue
		}
		if seen[e.block.Type] {
			continue
		}
		seen[e.block.Type] = true
		out.Set(e.block.Type, decodeBlocks(body.BlocksOfType(e.block.Type)))
	}
	return out
}

// decodeBlocks maps a same-type block group onto its JSON shape by label
// cardinality.
func decodeBlocks(blocks []*ast.Block) any {
	labeled := false
	for _, b := range blocks {
		if len(b.Labels) > 0 {
			labeled = true
			break
		}
	}

	if !labeled {
		if len(blocks) == 1 {
			return decodeBody(blocks[0].Body)
		}
		arr := make([]any, len(blocks))
		for i, b := range blocks {
			arr[i] = decodeBody(b.Body)
		}
		return arr
	}

	unique := true
	seen := make(map[string]bool)
	for _, b := range blocks {
		path := strings.Join(b.Labels, "\x00")
		if len(b.Labels) == 0 || seen[path] {
			unique = false
			break
		}
		seen[path] = true
	}

	if unique {
		out := utils.NewOrderedMap()
		for _, b := range blocks {
			node := out
			for _, label := range b.Labels[:len(b.Labels)-1] {
				child, ok := getMap(node, label)
				if !ok {
					child = utils.NewOrderedMap()
					node.Set(label, child)
				}
				node = child
			}
			node.Set(b.Labels[len(b.Labels)-1], decodeBody(b.Body))
		}
		return out
	}

	// duplicate label paths keep repetition order as single-key maps
	arr := make([]any, 0, len(blocks))
	for _, b := range blocks {
		var v any = decodeBody(b.Body)
		for i := len(b.Labels) - 1; i >= 0; i-- {
			wrap := utils.NewOrderedMap()
			wrap.Set(b.Labels[i], v)
			v = wrap
		}
		arr = append(arr, v)
	}
	return arr
}

func getMap(m *utils.OrderedMap, key string) (*utils.OrderedMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*utils.OrderedMap)
	return child, ok
}

func decodeValue(v ast.Value) any {
	switch t := v.(type) {
	case *ast.StringLit:
		return t.Value
	case *ast.NumberLit:
		return utils.CanonicalNumber(t.Value)
	case *ast.BoolLit:
		return t.Value
	case *ast.NullLit:
		return nil
	case *ast.TemplateLit:
		// raw text kept verbatim, inner expressions stay unevaluated
		return t.Raw
	case *ast.ArrayLit:
		arr := make([]any, len(t.Items))
		for i, item := range t.Items {
			arr[i] = decodeValue(item)
		}
		return arr
	case *ast.ObjectLit:
		out := utils.NewOrderedMap()
		for _, e := range t.Entries {
			out.Set(e.Key, decodeValue(e.Value))
		}
		return out
	case *ast.CallExpr:
		out := utils.NewOrderedMap()
		out.Set(FunctionKey, t.Name)
		args := make([]any, len(t.Args))
		for i, arg := range t.Args {
			args[i] = decodeValue(arg)
		}
		out.Set(ArgsKey, args)
		return out
	default:
		// references and operator expressions pass through as source text
		return ast.ValueText(v)
	}
}
