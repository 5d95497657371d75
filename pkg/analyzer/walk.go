package analyzer

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Walk performs a generic recursive descent over every child slot of every
// node kind, calling fn for each node visited. If fn returns false the
// descent stops immediately.
//
// The descent is deliberately not scope-aware: analyzed bodies are fragments
// extracted from a larger tree and are not necessarily valid roots for a
// scoped traversal. Both JSX detection and hook detection share this walker.
func Walk(node *ts.Node, fn func(*ts.Node) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if !Walk(node.Child(i), fn) {
			return false
		}
	}
	return true
}

// findChildByKind returns the first direct child with the given kind.
func findChildByKind(node *ts.Node, kind string) *ts.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasChildOfKind reports whether node has a direct child with the given kind.
func hasChildOfKind(node *ts.Node, kind string) bool {
	return findChildByKind(node, kind) != nil
}
