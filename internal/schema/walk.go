// Package schema walks form-field schema trees.
//
// Every node is addressed by its fully-qualified property path: the root's
// prefix, followed by each ancestor's child key, joined with ".". A node two
// levels below root "__root_schema__" via children "name" then "first" is
// visited with path "schema.__root_schema__.name.first".
package schema

import "github.com/danieljhkim/themereset/internal/theme"

// Visitor is called once per node with the node's fully-qualified path.
type Visitor func(node *theme.SchemaNode, path string)

// Walk visits root and its descendants depth-first in pre-order. Children
// are visited in lexical key order. A nil root is not visited.
func Walk(root *theme.SchemaNode, prefix string, visit Visitor) {
	if root == nil || visit == nil {
		return
	}

	visit(root, prefix)
	for _, key := range root.ChildKeys() {
		Walk(root.Children[key], theme.JoinPath(prefix, key), visit)
	}
}

// RootPath returns the path prefix of a schema's root node.
func RootPath(s *theme.Schema) string {
	if s == nil {
		return ""
	}
	return theme.JoinPath(theme.SchemaKey, s.RootKey)
}

// WalkSchema walks the tree held by s, starting at RootPath(s).
func WalkSchema(s *theme.Schema, visit Visitor) {
	if s == nil {
		return
	}
	Walk(s.Root, RootPath(s), visit)
}
