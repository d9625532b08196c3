package txn_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gedtree/gedtree/gedtree/mutate"
	"github.com/gedtree/gedtree/gedtree/txn"
	"github.com/gedtree/gedtree/testutil"
	"github.com/gedtree/gedtree/types"
)

func strptr(s string) *string { return &s }

func TestApplyUndoRestoresValues(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	change, err := mutate.UpdatePersonMetadata(doc, nil, universe.Johann, mutate.MetadataUpdate{
		Occupation: strptr("Master carpenter"),
		BirthPlace: strptr("Altona, Germany"),
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}

	if err := txn.ApplyUndo(doc, change); err != nil {
		t.Fatalf("ApplyUndo: %v", err)
	}

	indi := doc.IndividualByID(universe.Johann)
	if got := indi.ChildValue(types.TagOccupation); got != "Carpenter" {
		t.Errorf("OCCU after undo = %q, want Carpenter", got)
	}
	if got := indi.Child(types.TagBirth).ChildValue(types.TagPlace); got != "Hamburg, Germany" {
		t.Errorf("BIRT.PLAC after undo = %q", got)
	}
}

func TestApplyUndoRemovesCreatedNodes(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	change, err := mutate.UpdatePersonMetadata(doc, nil, universe.Clara, mutate.MetadataUpdate{
		Occupation:  strptr("Seamstress"),
		CustomFacts: map[string]string{"RELI": "Lutheran"},
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}

	if err := txn.ApplyUndo(doc, change); err != nil {
		t.Fatalf("ApplyUndo: %v", err)
	}

	indi := doc.IndividualByID(universe.Clara)
	if indi.Child(types.TagOccupation) != nil {
		t.Error("created OCCU should be removed by undo")
	}
	if indi.Child("RELI") != nil {
		t.Error("created RELI should be removed by undo")
	}
}

func TestApplyUndoMissingPerson(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)

	err := txn.ApplyUndo(doc, &types.ChangeRecord{PersonID: "@I99@"})
	var notFound *types.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
}

func TestTransactionUndoLIFO(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)
	m := txn.NewManager()

	if _, err := m.Begin("add a research find"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	person := mutate.AddIndividual(doc, m, mutate.AddIndividualParams{
		FirstName: "Dora", LastName: "Lehmann", Gender: "F", BirthDate: "1890",
	})
	if !person.Success {
		t.Fatalf("AddIndividual: %s", person.Error)
	}
	source := mutate.CreateSourceRecord(doc, m, mutate.SourceParams{Title: "Berlin Register"})
	if !source.Success {
		t.Fatalf("CreateSourceRecord: %s", source.Error)
	}
	citation := mutate.AttachSourceCitation(doc, m, mutate.CitationParams{
		PersonID: person.ID, SourceID: source.ID, EventType: types.TagBirth,
	})
	if !citation.Success {
		t.Fatalf("AttachSourceCitation: %s", citation.Error)
	}

	rec, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if rec.OperationCount != 3 {
		t.Fatalf("got %d ops, want 3", rec.OperationCount)
	}

	result := txn.ApplyTransactionUndo(doc, rec)
	if !result.Success {
		t.Fatalf("undo failed: %v", result.Errors)
	}
	if result.OperationsUndone != 3 {
		t.Errorf("OperationsUndone = %d, want 3", result.OperationsUndone)
	}

	if doc.IndividualByID(person.ID) != nil {
		t.Error("undone individual should not resolve")
	}
	if doc.SourceByID(source.ID) != nil {
		t.Error("undone source should not resolve")
	}
}

func TestTransactionUndoStripsFamilyRefs(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)
	m := txn.NewManager()

	if _, err := m.Begin("marry Karl and Clara"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	result := mutate.AddSpouseRelationship(doc, m, universe.Karl, universe.Clara, "1905", "")
	if !result.Success {
		t.Fatalf("AddSpouseRelationship: %s", result.Error)
	}
	rec, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	undo := txn.ApplyTransactionUndo(doc, rec)
	if !undo.Success {
		t.Fatalf("undo failed: %v", undo.Errors)
	}

	if doc.FamilyByID(result.FamilyID) != nil {
		t.Error("undone family should not resolve")
	}
	for _, id := range []string{universe.Karl, universe.Clara} {
		for _, fams := range doc.IndividualByID(id).ChildValues(types.TagFamilyAsSpouse) {
			if fams == result.FamilyID {
				t.Errorf("%s still references the undone family", id)
			}
		}
	}
}

func TestTransactionUndoCollectsErrors(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)
	m := txn.NewManager()

	if _, err := m.Begin("mixed"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	person := mutate.AddIndividual(doc, m, mutate.AddIndividualParams{
		FirstName: "Dora", LastName: "Lehmann", Gender: "F",
	})
	rec, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Remove the person out of band; the undo can no longer find it but
	// still reports rather than panics.
	doc.Remove(doc.IndividualByID(person.ID))
	rec.Operations = append(rec.Operations, types.Operation{Type: "rename_planet"})

	result := txn.ApplyTransactionUndo(doc, rec)
	if result.Success {
		t.Fatal("undo with failures should not report success")
	}
	if result.OperationsUndone != 0 {
		t.Errorf("OperationsUndone = %d, want 0", result.OperationsUndone)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "unknown operation type") {
		t.Errorf("first error = %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "could not find person to remove") {
		t.Errorf("second error = %q", result.Errors[1])
	}
}

func TestUndoFreesIDForReuse(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)
	m := txn.NewManager()

	if _, err := m.Begin("tentative"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	person := mutate.AddIndividual(doc, m, mutate.AddIndividualParams{
		FirstName: "Dora", LastName: "Lehmann", Gender: "F",
	})
	rec, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	txn.ApplyTransactionUndo(doc, rec)

	// Id allocation scans the live document, so the freed pointer is
	// handed out again.
	if got := mutate.NewIndividualID(doc); got != person.ID {
		t.Errorf("NewIndividualID after undo = %s, want %s", got, person.ID)
	}
}
