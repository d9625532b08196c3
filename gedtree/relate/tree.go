package relate

import (
	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/types"
)

// Tree builders produce the nested projection consumed by tree
// visualizations. A leaf node carries no Children field at all (nil,
// serialized as omitted) rather than an empty array; consumers depend
// on that shape. The depth bound is mandatory: the builders carry no
// visited-set, so the bound is the only protection against malformed
// cyclic input.

// AncestorTree builds the tree of ancestors reachable from the person,
// parents as children of each node, bounded by maxDepth. Returns nil
// when the id matches no individual.
func AncestorTree(d *document.Document, personID string, maxDepth int) *types.TreeNode {
	person := d.IndividualByID(personID)
	if person == nil {
		return nil
	}
	return buildTree(d, person, 0, maxDepth, "", d.ParentsOf)
}

// DescendantTree builds the tree of descendants reachable from the
// person, bounded by maxDepth. Returns nil when the id matches no
// individual.
func DescendantTree(d *document.Document, personID string, maxDepth int) *types.TreeNode {
	person := d.IndividualByID(personID)
	if person == nil {
		return nil
	}
	return buildTree(d, person, 0, maxDepth, "", d.ChildrenOf)
}

// BidirectionalTree builds a tree centered on the person: the root is
// tagged direction "root" and carries separate Ancestors and
// Descendants branches (each present only when non-empty, each node
// tagged with its direction). Returns nil when the id matches no
// individual.
func BidirectionalTree(d *document.Document, personID string, ancestorDepth, descendantDepth int) *types.TreeNode {
	person := d.IndividualByID(personID)
	if person == nil {
		return nil
	}

	root := &types.TreeNode{
		PersonSummary: document.Summary(person),
		Direction:     types.DirectionRoot,
	}
	for _, parent := range d.ParentsOf(person) {
		root.Ancestors = append(root.Ancestors,
			buildTree(d, parent, 1, ancestorDepth, types.DirectionAncestor, d.ParentsOf))
	}
	for _, child := range d.ChildrenOf(person) {
		root.Descendants = append(root.Descendants,
			buildTree(d, child, 1, descendantDepth, types.DirectionDescendant, d.ChildrenOf))
	}
	return root
}

// buildTree recursively builds one direction of a tree. next yields
// the related individuals to descend into. Reaching maxDepth stops
// recursion but still emits the node itself.
func buildTree(d *document.Document, indi *types.Node, depth, maxDepth int, direction string, next func(*types.Node) []*types.Node) *types.TreeNode {
	node := &types.TreeNode{
		PersonSummary: document.Summary(indi),
		Direction:     direction,
	}
	if depth >= maxDepth {
		return node
	}
	for _, rel := range next(indi) {
		node.Children = append(node.Children, buildTree(d, rel, depth+1, maxDepth, direction, next))
	}
	return node
}
