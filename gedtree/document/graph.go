package document

import "github.com/gedtree/gedtree/types"

// FamiliesAsChild returns the FAM records the individual belongs to as
// a child, following its FAMC links in order. Dangling links are
// skipped.
func (d *Document) FamiliesAsChild(indi *types.Node) []*types.Node {
	return d.linkedFamilies(indi, types.TagFamilyAsChild)
}

// FamiliesAsSpouse returns the FAM records the individual belongs to
// as a spouse, following its FAMS links in order.
func (d *Document) FamiliesAsSpouse(indi *types.Node) []*types.Node {
	return d.linkedFamilies(indi, types.TagFamilyAsSpouse)
}

func (d *Document) linkedFamilies(indi *types.Node, linkTag string) []*types.Node {
	var out []*types.Node
	for _, link := range indi.ChildValues(linkTag) {
		if fam := d.FamilyByID(link); fam != nil {
			out = append(out, fam)
		}
	}
	return out
}

// FamilyMembers resolves the member slots of a family with the given
// tag (HUSB, WIFE or CHIL) to individual records, in slot order.
func (d *Document) FamilyMembers(family *types.Node, memberTag string) []*types.Node {
	var out []*types.Node
	for _, id := range family.ChildValues(memberTag) {
		if indi := d.IndividualByID(id); indi != nil {
			out = append(out, indi)
		}
	}
	return out
}

// ParentsOf returns the HUSB and WIFE occupants of every family the
// individual is a child of.
func (d *Document) ParentsOf(indi *types.Node) []*types.Node {
	var out []*types.Node
	for _, fam := range d.FamiliesAsChild(indi) {
		out = append(out, d.FamilyMembers(fam, types.TagHusband)...)
		out = append(out, d.FamilyMembers(fam, types.TagWife)...)
	}
	return out
}

// ChildrenOf returns the CHIL members of every family the individual
// is a spouse in.
func (d *Document) ChildrenOf(indi *types.Node) []*types.Node {
	var out []*types.Node
	for _, fam := range d.FamiliesAsSpouse(indi) {
		out = append(out, d.FamilyMembers(fam, types.TagChild)...)
	}
	return out
}
