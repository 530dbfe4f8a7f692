// Package outline models a PDF bookmark tree as an explicit forest and
// implements the pruning/remapping needed to keep bookmarks valid across
// page-range extraction and merging. All internal logic operates on Node;
// the underlying PDF library's bookmark shape is converted exactly once at
// the adapter boundary.
package outline

// Node is one bookmark. Page is a 0-based page index in the source
// document's page space until PruneAndRemap rewrites it.
type Node struct {
	Title    string
	Page     int
	Children []*Node
}

// Count returns the number of nodes in the forest, recursively.
func Count(forest []*Node) int {
	n := 0
	for _, node := range forest {
		n += 1 + Count(node.Children)
	}
	return n
}

// Relevant reports whether the node's own page, or any descendant's page at
// any depth, falls in [start, end). A branch with no qualifying descendant
// is irrelevant regardless of its title.
func Relevant(n *Node, start, end int) bool {
	if n == nil {
		return false
	}
	if n.Page >= start && n.Page < end {
		return true
	}
	for _, c := range n.Children {
		if Relevant(c, start, end) {
			return true
		}
	}
	return false
}

// PruneAndRemap clones the branches of forest that intersect [start, end),
// rewriting page targets through remap. Irrelevant branches are dropped
// entirely. A node kept only as a path to a deeper relevant descendant
// anchors at page 0 of the new document: a kept path must still resolve to
// some valid page. Nodes whose target cannot be remapped are dropped
// silently; pruning never fails.
func PruneAndRemap(forest []*Node, start, end int, remap func(old int) (int, bool)) []*Node {
	var out []*Node
	for _, n := range forest {
		if !Relevant(n, start, end) {
			continue
		}
		clone := &Node{Title: n.Title}
		if n.Page >= start && n.Page < end {
			newPage, ok := remap(n.Page)
			if !ok {
				continue
			}
			clone.Page = newPage
		}
		clone.Children = PruneAndRemap(n.Children, start, end, remap)
		out = append(out, clone)
	}
	return out
}
