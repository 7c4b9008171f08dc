package ast

import "github.com/genelet/skyline/token"

// Attribute is a single name = value definition inside a body.
type Attribute struct {
	Name      string
	Value     Value
	NameRange token.Range
	SrcRange  token.Range
}

// Block is a labeled, nestable structural element:
//
//	type "label1" "label2" { body }
//
// Type is any identifier; skyline assigns no meaning to block keywords,
// consumers do.
type Block struct {
	Type      string
	Labels    []string
	Body      *Body
	TypeRange token.Range
	SrcRange  token.Range
}

// Body is the recursive unit of the structural grammar: an ordered list of
// attributes and an ordered list of blocks. The document root and every
// nested block body are grammatically identical.
type Body struct {
	Attributes []*Attribute
	Blocks     []*Block
	SrcRange   token.Range
}

// Attribute returns the named attribute, or nil.
func (b *Body) Attribute(name string) *Attribute {
	for _, attr := range b.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// AttributeNames returns the attribute names in source order.
func (b *Body) AttributeNames() []string {
	names := make([]string, len(b.Attributes))
	for i, attr := range b.Attributes {
		names[i] = attr.Name
	}
	return names
}

// BlocksOfType returns all blocks with the given type keyword in source
// order. Same-type blocks accumulate; they never overwrite each other.
func (b *Body) BlocksOfType(blockType string) []*Block {
	var blocks []*Block
	for _, blk := range b.Blocks {
		if blk.Type == blockType {
			blocks = append(blocks, blk)
		}
	}
	return blocks
}

// BlockTypes returns the distinct block type keywords in first-appearance
// order.
func (b *Body) BlockTypes() []string {
	var types []string
	seen := make(map[string]bool)
	for _, blk := range b.Blocks {
		if !seen[blk.Type] {
			seen[blk.Type] = true
			types = append(types, blk.Type)
		}
	}
	return types
}

// Document is a parsed configuration file: the root body plus consumer
// convenience projections. The projections relabel nothing; the parser
// keeps the literal keywords used in source.
type Document struct {
	Filename string
	Body     *Body
}

// Defaults returns the attributes of the top-level "defaults" block when
// one exists, otherwise the root body's own attributes.
func (d *Document) Defaults() []*Attribute {
	if blocks := d.Body.BlocksOfType("defaults"); len(blocks) > 0 {
		return blocks[0].Body.Attributes
	}
	return d.Body.Attributes
}

// BlocksNamed returns top-level blocks matching any of the given type
// keywords, merged in source order. Callers use it to fold legacy keyword
// aliases that denote the same structural role.
func (d *Document) BlocksNamed(types ...string) []*Block {
	match := make(map[string]bool, len(types))
	for _, t := range types {
		match[t] = true
	}
	var blocks []*Block
	for _, blk := range d.Body.Blocks {
		if match[blk.Type] {
			blocks = append(blocks, blk)
		}
	}
	return blocks
}
