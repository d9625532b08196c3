package mutate

import (
	"fmt"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/internal/validation"
	"github.com/gedtree/gedtree/types"
)

// FamilyParams describes a new FAM record. Both spouse slots are
// optional.
type FamilyParams struct {
	HusbandID     string
	WifeID        string
	MarriageDate  string
	MarriagePlace string
}

// CreateFamilyRecord creates a new FAM record with a fresh @F<n>@
// pointer, filling HUSB/WIFE slots by normalized pointer and adding a
// MARR sub-tree when a date or place is given. The referenced spouses
// are recorded so that undoing the family can strip their FAMC/FAMS
// links again.
func CreateFamilyRecord(d *document.Document, rec Recorder, p FamilyParams) Result {
	id := NewFamilyID(d)
	fam := types.NewNode(0, id, types.TagFamily, "")

	var referenced []string
	if p.HusbandID != "" {
		husbandID := document.NormalizePointer(p.HusbandID)
		fam.AddChild(types.NewNode(1, "", types.TagHusband, husbandID))
		referenced = append(referenced, husbandID)
	}
	if p.WifeID != "" {
		wifeID := document.NormalizePointer(p.WifeID)
		fam.AddChild(types.NewNode(1, "", types.TagWife, wifeID))
		referenced = append(referenced, wifeID)
	}
	if event := eventNode(types.TagMarriage, p.MarriageDate, p.MarriagePlace); event != nil {
		fam.AddChild(event)
	}

	d.Append(fam)

	record(rec, types.Operation{
		Type:                  types.OpAddFamily,
		FamilyID:              id,
		ReferencedIndividuals: referenced,
	})

	return Result{Success: true, ID: id}
}

// AddChildToFamily appends a CHIL reference to the family and the
// reciprocal FAMC reference to the child; both sides of the edge stay
// consistent.
func AddChildToFamily(d *document.Document, familyID, childID string) Result {
	familyID = document.NormalizePointer(familyID)
	childID = document.NormalizePointer(childID)

	fam := d.FamilyByID(familyID)
	if fam == nil {
		return failure(fmt.Sprintf("Family not found: %s", familyID), nil)
	}

	fam.AddChild(types.NewNode(1, "", types.TagChild, childID))

	if child := d.IndividualByID(childID); child != nil {
		child.AddChild(types.NewNode(1, "", types.TagFamilyAsChild, familyID))
	}

	d.Reindex()
	return Result{Success: true}
}

// DetectCircularAncestry reports whether linking potentialParent as a
// parent of person would make person its own ancestor: it computes the
// full ancestor closure of potentialParent (depth-first, guarded by a
// visited set so pre-existing malformed cycles terminate) and checks
// whether person appears in it. The closure includes potentialParent
// itself, so a self-link is always circular. This is the only cycle
// guard in the system and must run before a parent-child link is
// persisted.
func DetectCircularAncestry(d *document.Document, personID, potentialParentID string) bool {
	visited := make(map[string]bool)
	collectAncestors(d, document.NormalizePointer(potentialParentID), visited)
	return visited[document.NormalizePointer(personID)]
}

func collectAncestors(d *document.Document, id string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	indi := d.IndividualByID(id)
	if indi == nil {
		return
	}
	for _, parent := range d.ParentsOf(indi) {
		collectAncestors(d, parent.Pointer, visited)
	}
}

// AddFamilyRelationship links parent to child, creating or reusing
// family records as needed. The circular-ancestry check (when enabled)
// and the parent-age consistency check both run first; an ERROR-level
// finding refuses the link. If the child already belongs to a family,
// the parent fills the slot matching its gender, falling back to
// whichever slot is free, and the link is refused when both slots are
// occupied. Otherwise a new family is created and the child attached
// to it. The parent always receives a reciprocal FAMS link on success.
func AddFamilyRelationship(d *document.Document, rec Recorder, parentID, childID string, checkCircular bool) Result {
	parentID = document.NormalizePointer(parentID)
	childID = document.NormalizePointer(childID)

	if checkCircular && DetectCircularAncestry(d, childID, parentID) {
		return failure(fmt.Sprintf("Cannot add relationship: would create circular ancestry. %s is a descendant of %s.", parentID, childID), nil)
	}

	parent := d.IndividualByID(parentID)
	child := d.IndividualByID(childID)

	var warnings []string
	if parent != nil && child != nil {
		parentBirth, childBirth := birthDateOf(parent), birthDateOf(child)
		if parentBirth != "" && childBirth != "" {
			warnings = append(warnings, validation.CheckDateConsistency(childBirth, "", parentBirth)...)
			if types.HasBlockingError(warnings) {
				return failure("Age validation failed. Parent too young to have child.", warnings)
			}
		}
	}

	parentGender := types.GenderUnknown
	if parent != nil {
		parentGender = document.Gender(parent)
	}

	if existing := existingFamilyOf(d, child); existing != nil {
		hasHusband := existing.Child(types.TagHusband) != nil
		hasWife := existing.Child(types.TagWife) != nil

		switch {
		case parentGender == types.GenderMale && !hasHusband:
			existing.AddChild(types.NewNode(1, "", types.TagHusband, parentID))
		case parentGender == types.GenderFemale && !hasWife:
			existing.AddChild(types.NewNode(1, "", types.TagWife, parentID))
		case !hasHusband:
			existing.AddChild(types.NewNode(1, "", types.TagHusband, parentID))
		case !hasWife:
			existing.AddChild(types.NewNode(1, "", types.TagWife, parentID))
		default:
			return failure(fmt.Sprintf("Family %s already has both parents.", existing.Pointer), nil)
		}

		if parent != nil {
			parent.AddChild(types.NewNode(1, "", types.TagFamilyAsSpouse, existing.Pointer))
		}
		d.Reindex()
		return Result{Success: true, FamilyID: existing.Pointer, Warnings: warnings}
	}

	famParams := FamilyParams{}
	switch parentGender {
	case types.GenderMale:
		famParams.HusbandID = parentID
	case types.GenderFemale:
		famParams.WifeID = parentID
	}
	famResult := CreateFamilyRecord(d, rec, famParams)
	if !famResult.Success {
		return famResult
	}

	if childResult := AddChildToFamily(d, famResult.ID, childID); !childResult.Success {
		return childResult
	}

	if parent != nil {
		parent.AddChild(types.NewNode(1, "", types.TagFamilyAsSpouse, famResult.ID))
	}
	d.Reindex()
	return Result{Success: true, FamilyID: famResult.ID, Warnings: warnings}
}

// existingFamilyOf returns the family the child already belongs to via
// its first FAMC link, or nil.
func existingFamilyOf(d *document.Document, child *types.Node) *types.Node {
	if child == nil {
		return nil
	}
	if link := child.ChildValue(types.TagFamilyAsChild); link != "" {
		return d.FamilyByID(link)
	}
	return nil
}

func birthDateOf(indi *types.Node) string {
	if birth := indi.Child(types.TagBirth); birth != nil {
		return birth.ChildValue(types.TagDate)
	}
	return ""
}

// AddSpouseRelationship creates a family linking two spouses and
// attaches the reciprocal FAMS to both. Slot assignment prefers the
// unambiguous M/F pairing; when one spouse is M and the other is not
// F, the M takes HUSB; otherwise the first spouse takes HUSB by
// default.
func AddSpouseRelationship(d *document.Document, rec Recorder, spouse1ID, spouse2ID, marriageDate, marriagePlace string) Result {
	spouse1ID = document.NormalizePointer(spouse1ID)
	spouse2ID = document.NormalizePointer(spouse2ID)

	spouse1 := d.IndividualByID(spouse1ID)
	spouse2 := d.IndividualByID(spouse2ID)
	if spouse1 == nil {
		return failure(fmt.Sprintf("Spouse 1 not found: %s", spouse1ID), nil)
	}
	if spouse2 == nil {
		return failure(fmt.Sprintf("Spouse 2 not found: %s", spouse2ID), nil)
	}

	gender1, gender2 := document.Gender(spouse1), document.Gender(spouse2)

	husbandID, wifeID := spouse1ID, spouse2ID
	switch {
	case gender1 == types.GenderMale && gender2 == types.GenderFemale:
	case gender1 == types.GenderFemale && gender2 == types.GenderMale:
		husbandID, wifeID = spouse2ID, spouse1ID
	case gender1 == types.GenderMale:
	case gender2 == types.GenderMale:
		husbandID, wifeID = spouse2ID, spouse1ID
	}

	famResult := CreateFamilyRecord(d, rec, FamilyParams{
		HusbandID:     husbandID,
		WifeID:        wifeID,
		MarriageDate:  marriageDate,
		MarriagePlace: marriagePlace,
	})
	if !famResult.Success {
		return famResult
	}

	spouse1.AddChild(types.NewNode(1, "", types.TagFamilyAsSpouse, famResult.ID))
	spouse2.AddChild(types.NewNode(1, "", types.TagFamilyAsSpouse, famResult.ID))
	d.Reindex()

	return Result{Success: true, FamilyID: famResult.ID}
}
