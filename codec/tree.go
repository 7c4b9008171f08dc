package codec

import (
	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/utils"
)

// BuildTree converts a parsed document into a path-addressable tree.
// Every block becomes a node named by its type followed by its labels,
// and attributes become items on the owning node, already collapsed to
// native values. The tree is safe for concurrent readers.
func BuildTree(doc *ast.Document) *utils.Tree {
	root := utils.NewTree("root")
	fillTree(root, doc.Body)
	return root
}

func fillTree(node *utils.Tree, body *ast.Body) {
	for _, attr := range body.Attributes {
		node.AddItem(attr.Name, decodeValue(attr.Value))
	}
	for _, block := range body.Blocks {
		child := node.AddNodes(block.Type, block.Labels...)
		fillTree(child, block.Body)
	}
}
