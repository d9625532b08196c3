package types

// PersonSummary is the flat projection of an individual used by
// relationship queries, tree nodes and the duplicate scorer. A zero
// BirthYear or DeathYear means the year is unknown.
type PersonSummary struct {
	ID         string `json:"id" yaml:"id"`
	FirstName  string `json:"firstName" yaml:"firstName"`
	LastName   string `json:"lastName" yaml:"lastName"`
	FullName   string `json:"fullName" yaml:"fullName"`
	Gender     string `json:"gender" yaml:"gender"`
	BirthYear  int    `json:"birthYear,omitempty" yaml:"birthYear,omitempty"`
	DeathYear  int    `json:"deathYear,omitempty" yaml:"deathYear,omitempty"`
	BirthPlace string `json:"birthPlace,omitempty" yaml:"birthPlace,omitempty"`
}

// PersonDetails is the full projection of an individual, including
// event places, occupation, notes and multi-valued custom facts
// (EDUC, RELI, NATI, TITL, FACT, EVEN).
type PersonDetails struct {
	PersonSummary `yaml:",inline"`
	DeathPlace    string              `json:"deathPlace,omitempty" yaml:"deathPlace,omitempty"`
	Occupation    string              `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	Notes         []string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	CustomFacts   map[string][]string `json:"customFacts,omitempty" yaml:"customFacts,omitempty"`
}

// Tree directions used by bidirectional tree nodes.
const (
	DirectionRoot       = "root"
	DirectionAncestor   = "ancestor"
	DirectionDescendant = "descendant"
)

// TreeNode is one node of an ancestor, descendant or bidirectional
// tree projection. Children is omitted from serialized output when
// the node is a leaf; this omit-when-empty shape is part of the
// contract with tree-visualization consumers. Ancestors and
// Descendants are populated only on the root of a bidirectional tree,
// and only when non-empty.
type TreeNode struct {
	PersonSummary `yaml:",inline"`
	Direction     string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	Children      []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
	Ancestors     []*TreeNode `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Descendants   []*TreeNode `json:"descendants,omitempty" yaml:"descendants,omitempty"`
}
