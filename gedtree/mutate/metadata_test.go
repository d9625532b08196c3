package mutate_test

import (
	"errors"
	"testing"

	"github.com/gedtree/gedtree/gedtree/mutate"
	"github.com/gedtree/gedtree/testutil"
	"github.com/gedtree/gedtree/types"
)

func strptr(s string) *string { return &s }

func TestUpdatePersonMetadata(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)
	rec := &opRecorder{}

	change, err := mutate.UpdatePersonMetadata(doc, rec, universe.Johann, mutate.MetadataUpdate{
		Occupation: strptr("Master carpenter"),
		BirthPlace: strptr("Altona, Germany"),
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}
	if change.PersonID != universe.Johann {
		t.Errorf("PersonID = %s", change.PersonID)
	}
	if change.ID == "" {
		t.Error("change record should carry an id")
	}
	if len(change.Changes) != 2 {
		t.Fatalf("got %d field changes, want 2: %+v", len(change.Changes), change.Changes)
	}

	occu := change.Changes[0]
	if occu.Field != types.TagOccupation || occu.OldValue == nil || *occu.OldValue != "Carpenter" || occu.NewValue != "Master carpenter" {
		t.Errorf("OCCU change = %+v", occu)
	}
	plac := change.Changes[1]
	if plac.Field != "BIRT.PLAC" || plac.OldValue == nil || *plac.OldValue != "Hamburg, Germany" {
		t.Errorf("BIRT.PLAC change = %+v", plac)
	}

	indi := doc.IndividualByID(universe.Johann)
	if indi.ChildValue(types.TagOccupation) != "Master carpenter" {
		t.Error("OCCU not applied")
	}
	if indi.Child(types.TagBirth).ChildValue(types.TagPlace) != "Altona, Germany" {
		t.Error("BIRT.PLAC not applied")
	}

	if len(rec.ops) != 1 || rec.ops[0].Type != types.OpUpdateMetadata || rec.ops[0].Change != change {
		t.Errorf("recorded ops = %+v", rec.ops)
	}
}

func TestUpdatePersonMetadataCreatesMissingNodes(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Clara has no OCCU and no custom facts; both are created with a
	// nil OldValue so undo removes them again.
	change, err := mutate.UpdatePersonMetadata(doc, nil, universe.Clara, mutate.MetadataUpdate{
		Occupation:  strptr("Seamstress"),
		CustomFacts: map[string]string{"reli": "Lutheran"},
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}
	for _, fc := range change.Changes {
		if fc.OldValue != nil {
			t.Errorf("%s: OldValue should be nil for created node, got %q", fc.Field, *fc.OldValue)
		}
	}

	indi := doc.IndividualByID(universe.Clara)
	if indi.ChildValue(types.TagOccupation) != "Seamstress" {
		t.Error("OCCU not created")
	}
	// Custom fact tags are uppercased.
	if indi.ChildValue("RELI") != "Lutheran" {
		t.Error("RELI not created from lowercase tag")
	}
}

func TestUpdatePersonMetadataSkipsMissingEvent(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Maria has no DEAT event; a death place has nowhere to live.
	change, err := mutate.UpdatePersonMetadata(doc, nil, universe.Maria, mutate.MetadataUpdate{
		DeathPlace: strptr("Bremen, Germany"),
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}
	if len(change.Changes) != 0 {
		t.Errorf("missing event should be skipped, got %+v", change.Changes)
	}
	if doc.IndividualByID(universe.Maria).Child(types.TagDeath) != nil {
		t.Error("DEAT must not be created by a metadata update")
	}
}

func TestUpdatePersonMetadataNotes(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	change, err := mutate.UpdatePersonMetadata(doc, nil, universe.Johann, mutate.MetadataUpdate{
		Notes: strptr("Revised biography"),
	})
	if err != nil {
		t.Fatalf("UpdatePersonMetadata: %v", err)
	}
	if len(change.Changes) != 1 {
		t.Fatalf("changes = %+v", change.Changes)
	}
	fc := change.Changes[0]
	if fc.OldValue == nil || *fc.OldValue != "Emigrated to America in 1872, returned 1885" {
		t.Errorf("old notes = %v", fc.OldValue)
	}
	if got := doc.IndividualByID(universe.Johann).ChildValue(types.TagNote); got != "Revised biography" {
		t.Errorf("NOTE = %q", got)
	}
}

func TestUpdatePersonMetadataUnknownPerson(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)

	_, err := mutate.UpdatePersonMetadata(doc, nil, "@I99@", mutate.MetadataUpdate{
		Occupation: strptr("Ghost"),
	})
	var notFound *types.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
}
