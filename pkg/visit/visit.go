// Package visit dispatches over the closed set of tree node variants.
//
// A [Visitor] implements one method per variant. [Accept] performs the
// dispatch with an exhaustive type switch, so the tree never needs to know
// about its consumers and adding a variant is a compile-visible change in
// one place.
//
// Visitors decide for themselves whether and how to recurse into group
// children. A visitor that needs a different state for the subtree (a new
// name prefix, a new parent frame) builds a child visitor and calls
// [Nodes] with it.
package visit

import (
	"fmt"

	"github.com/matzehuels/psdui/pkg/uitree"
)

// Visitor handles each node variant.
type Visitor interface {
	VisitGroup(n *uitree.GroupNode) error
	VisitImage(n *uitree.ImageNode) error
	VisitText(n *uitree.TextNode) error
}

// Accept dispatches n to the matching method of v.
func Accept(n uitree.Node, v Visitor) error {
	switch n := n.(type) {
	case *uitree.GroupNode:
		return v.VisitGroup(n)
	case *uitree.ImageNode:
		return v.VisitImage(n)
	case *uitree.TextNode:
		return v.VisitText(n)
	default:
		return fmt.Errorf("visit: unsupported node type %T", n)
	}
}

// Nodes dispatches every node in order and stops at the first error.
func Nodes(nodes []uitree.Node, v Visitor) error {
	for _, n := range nodes {
		if err := Accept(n, v); err != nil {
			return err
		}
	}
	return nil
}

// Tree dispatches the top-level nodes of root.
func Tree(root *uitree.Root, v Visitor) error {
	return Nodes(root.Children, v)
}

// Funcs adapts plain functions to a Visitor. Nil fields are no-ops, and a
// nil Group handler recurses into children with the same Funcs.
type Funcs struct {
	Group func(n *uitree.GroupNode) error
	Image func(n *uitree.ImageNode) error
	Text  func(n *uitree.TextNode) error
}

func (f Funcs) VisitGroup(n *uitree.GroupNode) error {
	if f.Group == nil {
		return Nodes(n.Children, f)
	}
	return f.Group(n)
}

func (f Funcs) VisitImage(n *uitree.ImageNode) error {
	if f.Image == nil {
		return nil
	}
	return f.Image(n)
}

func (f Funcs) VisitText(n *uitree.TextNode) error {
	if f.Text == nil {
		return nil
	}
	return f.Text(n)
}
