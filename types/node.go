// Package types provides the core value types shared across gedtree:
// the GEDCOM node tree, person projections, change records and
// transaction records.
package types

// Standard GEDCOM tags the engine works with. The parser accepts any
// tag; these constants cover the subset the engine interprets.
const (
	TagIndividual = "INDI"
	TagFamily     = "FAM"
	TagSource     = "SOUR"
	TagHeader     = "HEAD"
	TagTrailer    = "TRLR"

	TagName       = "NAME"
	TagGivenName  = "GIVN"
	TagSurname    = "SURN"
	TagSex        = "SEX"
	TagBirth      = "BIRT"
	TagDeath      = "DEAT"
	TagMarriage   = "MARR"
	TagDate       = "DATE"
	TagPlace      = "PLAC"
	TagOccupation = "OCCU"
	TagNote       = "NOTE"
	TagChange     = "CHAN"
	TagTime       = "TIME"

	TagFamilyAsChild  = "FAMC"
	TagFamilyAsSpouse = "FAMS"
	TagHusband        = "HUSB"
	TagWife           = "WIFE"
	TagChild          = "CHIL"

	TagTitle        = "TITL"
	TagAuthor       = "AUTH"
	TagPublication  = "PUBL"
	TagAbbreviation = "ABBR"
	TagText         = "TEXT"
	TagPage         = "PAGE"
	TagQuality      = "QUAY"
	TagData         = "DATA"
)

// Gender values carried in SEX nodes.
const (
	GenderMale    = "M"
	GenderFemale  = "F"
	GenderUnknown = "U"
)

// Node is the atomic unit of a GEDCOM document: a leveled, tagged line
// with an optional cross-reference pointer, an optional value, and an
// ordered list of child nodes. Children are owned exclusively by their
// parent; cross-record links (FAMC, FAMS, HUSB, WIFE, CHIL) are plain
// pointer strings carried in Value, never shared *Node references.
type Node struct {
	Level    int
	Pointer  string
	Tag      string
	Value    string
	Children []*Node
}

// NewNode creates a node with no children.
func NewNode(level int, pointer, tag, value string) *Node {
	return &Node{Level: level, Pointer: pointer, Tag: tag, Value: value}
}

// AddChild appends a child node, preserving insertion order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// RemoveChild removes the first child identical to the given node.
// Returns false if the node is not a direct child.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the value of the first direct child with the
// given tag, or the empty string if no such child exists.
func (n *Node) ChildValue(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Value
	}
	return ""
}

// ChildrenWithTag returns all direct children with the given tag, in
// document order.
func (n *Node) ChildrenWithTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// ChildValues returns the non-empty values of all direct children with
// the given tag, in document order.
func (n *Node) ChildValues(tag string) []string {
	var out []string
	for _, c := range n.ChildrenWithTag(tag) {
		if c.Value != "" {
			out = append(out, c.Value)
		}
	}
	return out
}
