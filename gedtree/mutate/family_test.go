package mutate_test

import (
	"strings"
	"testing"

	"github.com/gedtree/gedtree/gedtree/mutate"
	"github.com/gedtree/gedtree/testutil"
	"github.com/gedtree/gedtree/types"
)

func TestCreateFamilyRecord(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)
	rec := &opRecorder{}

	result := mutate.CreateFamilyRecord(doc, rec, mutate.FamilyParams{
		HusbandID:     "I5", // bare id is normalized
		WifeID:        "@I11@",
		MarriageDate:  "1905",
		MarriagePlace: "Hamburg, Germany",
	})
	if !result.Success {
		t.Fatalf("CreateFamilyRecord failed: %s", result.Error)
	}
	if result.ID != "@F6@" {
		t.Errorf("ID = %s, want @F6@", result.ID)
	}

	fam := doc.FamilyByID(result.ID)
	if fam.ChildValue(types.TagHusband) != universe.Karl {
		t.Errorf("HUSB = %q", fam.ChildValue(types.TagHusband))
	}
	if fam.ChildValue(types.TagWife) != universe.Clara {
		t.Errorf("WIFE = %q", fam.ChildValue(types.TagWife))
	}
	marr := fam.Child(types.TagMarriage)
	if marr == nil || marr.ChildValue(types.TagDate) != "1905" {
		t.Error("MARR sub-tree not written")
	}

	if len(rec.ops) != 1 || rec.ops[0].Type != types.OpAddFamily {
		t.Fatalf("recorded ops = %v", rec.ops)
	}
	if got := rec.ops[0].ReferencedIndividuals; len(got) != 2 || got[0] != universe.Karl || got[1] != universe.Clara {
		t.Errorf("ReferencedIndividuals = %v", got)
	}
}

func TestAddChildToFamily(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	result := mutate.AddChildToFamily(doc, universe.HeinrichPat, universe.Emma)
	if !result.Success {
		t.Fatalf("AddChildToFamily failed: %s", result.Error)
	}

	fam := doc.FamilyByID(universe.HeinrichPat)
	children := fam.ChildValues(types.TagChild)
	if len(children) != 1 || children[0] != universe.Emma {
		t.Errorf("CHIL = %v", children)
	}
	famc := doc.IndividualByID(universe.Emma).ChildValues(types.TagFamilyAsChild)
	if len(famc) != 2 || famc[1] != universe.HeinrichPat {
		t.Errorf("reciprocal FAMC = %v", famc)
	}
}

func TestAddChildToUnknownFamily(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	result := mutate.AddChildToFamily(doc, "@F99@", universe.Emma)
	if result.Success {
		t.Fatal("unknown family should fail")
	}
	if !strings.Contains(result.Error, "Family not found") {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestDetectCircularAncestry(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	tests := []struct {
		name            string
		person          string
		potentialParent string
		want            bool
	}{
		{"self link is circular", universe.Johann, universe.Johann, true},
		{"descendant as parent", universe.Johann, universe.Heinrich, true},
		{"grandchild as parent", universe.Wilhelm, universe.Heinrich, true},
		{"real parent direction", universe.Heinrich, universe.Johann, false},
		{"unrelated people", universe.Heinrich, universe.Franz, false},
		{"unknown parent id", universe.Heinrich, "@I99@", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mutate.DetectCircularAncestry(doc, tt.person, tt.potentialParent)
			if got != tt.want {
				t.Errorf("DetectCircularAncestry(%s, %s) = %v, want %v", tt.person, tt.potentialParent, got, tt.want)
			}
		})
	}
}

func TestAddFamilyRelationshipNewFamily(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Give Wilhelm a father born 1795.
	added := mutate.AddIndividual(doc, nil, mutate.AddIndividualParams{
		FirstName: "Josef",
		LastName:  "Schmidt",
		Gender:    "M",
		BirthDate: "1795",
	})
	if !added.Success {
		t.Fatalf("AddIndividual: %s", added.Error)
	}

	result := mutate.AddFamilyRelationship(doc, nil, added.ID, universe.Wilhelm, true)
	if !result.Success {
		t.Fatalf("AddFamilyRelationship failed: %s", result.Error)
	}
	if result.FamilyID != "@F6@" {
		t.Errorf("FamilyID = %s, want @F6@", result.FamilyID)
	}

	fam := doc.FamilyByID(result.FamilyID)
	if fam.ChildValue(types.TagHusband) != added.ID {
		t.Errorf("HUSB = %q, want %s", fam.ChildValue(types.TagHusband), added.ID)
	}
	if got := fam.ChildValues(types.TagChild); len(got) != 1 || got[0] != universe.Wilhelm {
		t.Errorf("CHIL = %v", got)
	}
	if doc.IndividualByID(universe.Wilhelm).ChildValue(types.TagFamilyAsChild) != result.FamilyID {
		t.Error("child missing reciprocal FAMC")
	}
	famsLinks := doc.IndividualByID(added.ID).ChildValues(types.TagFamilyAsSpouse)
	if len(famsLinks) != 1 || famsLinks[0] != result.FamilyID {
		t.Errorf("parent FAMS = %v", famsLinks)
	}
}

func TestAddFamilyRelationshipFillsFreeSlot(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	father := mutate.AddIndividual(doc, nil, mutate.AddIndividualParams{
		FirstName: "Josef", LastName: "Schmidt", Gender: "M", BirthDate: "1795",
	})
	mother := mutate.AddIndividual(doc, nil, mutate.AddIndividualParams{
		FirstName: "Martha", LastName: "Schmidt", Gender: "F", BirthDate: "1798",
	})

	first := mutate.AddFamilyRelationship(doc, nil, father.ID, universe.Wilhelm, true)
	if !first.Success {
		t.Fatalf("first link: %s", first.Error)
	}
	second := mutate.AddFamilyRelationship(doc, nil, mother.ID, universe.Wilhelm, true)
	if !second.Success {
		t.Fatalf("second link: %s", second.Error)
	}
	if second.FamilyID != first.FamilyID {
		t.Errorf("second parent created family %s, want reuse of %s", second.FamilyID, first.FamilyID)
	}

	fam := doc.FamilyByID(first.FamilyID)
	if fam.ChildValue(types.TagHusband) != father.ID || fam.ChildValue(types.TagWife) != mother.ID {
		t.Errorf("slots wrong: HUSB=%q WIFE=%q", fam.ChildValue(types.TagHusband), fam.ChildValue(types.TagWife))
	}
}

func TestAddFamilyRelationshipRefusesFullFamily(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Heinrich already has two parents in @F3@.
	result := mutate.AddFamilyRelationship(doc, nil, universe.Franz, universe.Heinrich, true)
	if result.Success {
		t.Fatal("link into a full family should be refused")
	}
	if result.Error != "Family @F3@ already has both parents." {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestAddFamilyRelationshipRefusesCircular(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	result := mutate.AddFamilyRelationship(doc, nil, universe.Heinrich, universe.Johann, true)
	if result.Success {
		t.Fatal("circular link should be refused")
	}
	if !strings.Contains(result.Error, "circular ancestry") {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestAddFamilyRelationshipCheckDisabled(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// A self-link is always circular; Pat carries no birth date, so the
	// age check stays silent and only the circular check stands in the
	// way. Disabling it lets the link through.
	refused := mutate.AddFamilyRelationship(doc, nil, universe.Pat, universe.Pat, true)
	if refused.Success {
		t.Fatal("self-link should be refused while the check is on")
	}
	allowed := mutate.AddFamilyRelationship(doc, nil, universe.Pat, universe.Pat, false)
	if !allowed.Success {
		t.Fatalf("unchecked link failed: %s", allowed.Error)
	}
}

func TestAddFamilyRelationshipRefusesYoungParent(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Heinrich is born 1880; Emma (born 1881) cannot be his parent.
	// (The circular check does not trip: they are cousins.)
	result := mutate.AddFamilyRelationship(doc, nil, universe.Emma, universe.Heinrich, true)
	if result.Success {
		t.Fatal("too-young parent should be refused")
	}
	if result.Error != "Age validation failed. Parent too young to have child." {
		t.Errorf("Error = %q", result.Error)
	}
	if !types.HasBlockingError(result.Warnings) {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestAddSpouseRelationship(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)
	rec := &opRecorder{}

	result := mutate.AddSpouseRelationship(doc, rec, universe.Clara, universe.Karl, "1905", "Hamburg")
	if !result.Success {
		t.Fatalf("AddSpouseRelationship failed: %s", result.Error)
	}

	fam := doc.FamilyByID(result.FamilyID)
	// Gender-based assignment: Karl (M) takes HUSB even as second arg.
	if fam.ChildValue(types.TagHusband) != universe.Karl {
		t.Errorf("HUSB = %q, want %s", fam.ChildValue(types.TagHusband), universe.Karl)
	}
	if fam.ChildValue(types.TagWife) != universe.Clara {
		t.Errorf("WIFE = %q, want %s", fam.ChildValue(types.TagWife), universe.Clara)
	}
	if fam.Child(types.TagMarriage).ChildValue(types.TagPlace) != "Hamburg" {
		t.Error("MARR place not written")
	}

	for _, id := range []string{universe.Clara, universe.Karl} {
		links := doc.IndividualByID(id).ChildValues(types.TagFamilyAsSpouse)
		found := false
		for _, l := range links {
			if l == result.FamilyID {
				found = true
			}
		}
		if !found {
			t.Errorf("%s missing FAMS %s: %v", id, result.FamilyID, links)
		}
	}
}

func TestAddSpouseRelationshipUnknownGenderDefaultsFirstToHusband(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Pat has no SEX record and Clara is F: no unambiguous pairing, so
	// the first spouse takes HUSB.
	result := mutate.AddSpouseRelationship(doc, nil, universe.Pat, universe.Clara, "", "")
	if !result.Success {
		t.Fatalf("AddSpouseRelationship failed: %s", result.Error)
	}
	fam := doc.FamilyByID(result.FamilyID)
	if fam.ChildValue(types.TagHusband) != universe.Pat {
		t.Errorf("HUSB = %q, want %s", fam.ChildValue(types.TagHusband), universe.Pat)
	}
}

func TestAddSpouseRelationshipUnknownSpouse(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	result := mutate.AddSpouseRelationship(doc, nil, "@I99@", universe.Clara, "", "")
	if result.Success {
		t.Fatal("unknown spouse should fail")
	}
	if !strings.Contains(result.Error, "Spouse 1 not found") {
		t.Errorf("Error = %q", result.Error)
	}
}
