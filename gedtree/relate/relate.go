// Package relate computes family relationships from the FAMC/FAMS
// link graph: parents, children, spouses, siblings, grandparents,
// aunts/uncles and cousins, plus the tree projections used for
// visualization.
//
// Every query takes a loosely-specified identifier and propagates the
// resolver's *types.NotFoundError for missing people; an empty result
// list is a valid outcome, distinct from not-found.
package relate

import (
	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/types"
)

// Parents returns the HUSB/WIFE occupants of the families the person
// is a child of.
func Parents(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	return summaries(d.ParentsOf(indi)), nil
}

// Children returns the CHIL members of every family the person is a
// spouse in.
func Children(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	return summaries(d.ChildrenOf(indi)), nil
}

// Spouses returns the occupants of the opposite gendered slot in every
// family the person belongs to. When the person's gender is neither M
// nor F, occupants of both slots are returned, excluding the person
// itself. That unknown-gender branch appends per family without
// cross-branch dedup, matching long-standing observable behavior.
func Spouses(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	gender := document.Gender(indi)
	var out []types.PersonSummary
	for _, fam := range d.FamiliesAsSpouse(indi) {
		spouseTag := types.TagHusband
		if gender == types.GenderMale {
			spouseTag = types.TagWife
		}
		out = append(out, summaries(d.FamilyMembers(fam, spouseTag))...)

		if gender != types.GenderMale && gender != types.GenderFemale {
			for _, tag := range []string{types.TagHusband, types.TagWife} {
				for _, member := range d.FamilyMembers(fam, tag) {
					if member != indi {
						out = append(out, document.Summary(member))
					}
				}
			}
		}
	}
	return out, nil
}

// Siblings returns all other children of the person's parents, deduped
// by pointer in first-seen order. A person with no parents has no
// siblings: the result is empty, not not-found.
func Siblings(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	return siblingsOf(d, indi), nil
}

func siblingsOf(d *document.Document, indi *types.Node) []types.PersonSummary {
	parents := d.ParentsOf(indi)
	if len(parents) == 0 {
		return []types.PersonSummary{}
	}

	seen := map[string]bool{indi.Pointer: true}
	out := []types.PersonSummary{}
	for _, parent := range parents {
		for _, fam := range d.FamiliesAsSpouse(parent) {
			for _, child := range d.FamilyMembers(fam, types.TagChild) {
				if !seen[child.Pointer] {
					seen[child.Pointer] = true
					out = append(out, document.Summary(child))
				}
			}
		}
	}
	return out
}

// Grandparents returns the parents of the person's parents, deduped by
// pointer.
func Grandparents(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []types.PersonSummary
	for _, parent := range d.ParentsOf(indi) {
		for _, gp := range d.ParentsOf(parent) {
			if !seen[gp.Pointer] {
				seen[gp.Pointer] = true
				out = append(out, document.Summary(gp))
			}
		}
	}
	return out, nil
}

// AuntsUncles returns the siblings of the person's parents, deduped by
// pointer across all parents.
func AuntsUncles(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []types.PersonSummary
	for _, parent := range d.ParentsOf(indi) {
		for _, sibling := range siblingsOf(d, parent) {
			if !seen[sibling.ID] {
				seen[sibling.ID] = true
				out = append(out, sibling)
			}
		}
	}
	return out, nil
}

// Cousins returns the children of the person's aunts and uncles,
// deduped by pointer.
func Cousins(d *document.Document, identifier string) ([]types.PersonSummary, error) {
	auntsUncles, err := AuntsUncles(d, identifier)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []types.PersonSummary
	for _, au := range auntsUncles {
		auNode := d.IndividualByID(au.ID)
		if auNode == nil {
			continue
		}
		for _, child := range d.ChildrenOf(auNode) {
			if !seen[child.Pointer] {
				seen[child.Pointer] = true
				out = append(out, document.Summary(child))
			}
		}
	}
	return out, nil
}

func summaries(nodes []*types.Node) []types.PersonSummary {
	out := make([]types.PersonSummary, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, document.Summary(n))
	}
	return out
}
