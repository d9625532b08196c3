package relate_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gedtree/gedtree/gedtree/relate"
	"github.com/gedtree/gedtree/testutil"
	"github.com/gedtree/gedtree/types"
)

func ids(people []types.PersonSummary) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func TestParents(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Parents(doc, universe.Johann)
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	want := []string{universe.Wilhelm, universe.Greta}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("parents mismatch (-want +got):\n%s", diff)
	}

	// No FAMC record means no parents, not an error.
	got, err = relate.Parents(doc, universe.Wilhelm)
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Wilhelm should have no parents, got %v", ids(got))
	}
}

func TestParentsByName(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Parents(doc, "Heinrich Schmidt")
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	want := []string{universe.Johann, universe.Maria}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("parents mismatch (-want +got):\n%s", diff)
	}
}

func TestChildren(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Children(doc, universe.Johann)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	want := []string{universe.Heinrich, universe.Clara}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestSpouses(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Spouses(doc, universe.Johann)
	if err != nil {
		t.Fatalf("Spouses: %v", err)
	}
	if diff := cmp.Diff([]string{universe.Maria}, ids(got)); diff != "" {
		t.Errorf("spouses mismatch (-want +got):\n%s", diff)
	}

	got, err = relate.Spouses(doc, universe.Maria)
	if err != nil {
		t.Fatalf("Spouses: %v", err)
	}
	if diff := cmp.Diff([]string{universe.Johann}, ids(got)); diff != "" {
		t.Errorf("spouses mismatch (-want +got):\n%s", diff)
	}
}

func TestSpousesUnknownGender(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// Pat has no SEX record: the query takes the unknown-gender branch,
	// which collects the HUSB slot (Heinrich) and then both slots
	// excluding Pat. Heinrich appears twice; that duplication is the
	// long-standing observable behavior.
	got, err := relate.Spouses(doc, universe.Pat)
	if err != nil {
		t.Fatalf("Spouses: %v", err)
	}
	want := []string{universe.Heinrich, universe.Heinrich}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("spouses mismatch (-want +got):\n%s", diff)
	}
}

func TestSiblings(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Siblings(doc, universe.Johann)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if diff := cmp.Diff([]string{universe.Karl}, ids(got)); diff != "" {
		t.Errorf("siblings mismatch (-want +got):\n%s", diff)
	}
}

func TestSiblingsEmptyWithoutParents(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Siblings(doc, universe.Wilhelm)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if got == nil {
		t.Fatal("no-parent siblings should be an empty list, not nil")
	}
	if len(got) != 0 {
		t.Errorf("Wilhelm should have no siblings, got %v", ids(got))
	}
}

func TestGrandparents(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Grandparents(doc, universe.Heinrich)
	if err != nil {
		t.Fatalf("Grandparents: %v", err)
	}
	want := []string{universe.Wilhelm, universe.Greta, universe.Otto, universe.Anna}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("grandparents mismatch (-want +got):\n%s", diff)
	}
}

func TestAuntsUncles(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.AuntsUncles(doc, universe.Heinrich)
	if err != nil {
		t.Fatalf("AuntsUncles: %v", err)
	}
	want := []string{universe.Karl, universe.Liese}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("aunts/uncles mismatch (-want +got):\n%s", diff)
	}
}

func TestCousins(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	got, err := relate.Cousins(doc, universe.Heinrich)
	if err != nil {
		t.Fatalf("Cousins: %v", err)
	}
	if diff := cmp.Diff([]string{universe.Emma}, ids(got)); diff != "" {
		t.Errorf("cousins mismatch (-want +got):\n%s", diff)
	}

	// Karl has no children, so Clara's cousin list matches Heinrich's.
	got, err = relate.Cousins(doc, universe.Clara)
	if err != nil {
		t.Fatalf("Cousins: %v", err)
	}
	if diff := cmp.Diff([]string{universe.Emma}, ids(got)); diff != "" {
		t.Errorf("cousins mismatch (-want +got):\n%s", diff)
	}
}

func TestQueriesPropagateNotFound(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)

	queries := map[string]func() ([]types.PersonSummary, error){
		"parents":      func() ([]types.PersonSummary, error) { return relate.Parents(doc, "@I99@") },
		"children":     func() ([]types.PersonSummary, error) { return relate.Children(doc, "@I99@") },
		"spouses":      func() ([]types.PersonSummary, error) { return relate.Spouses(doc, "@I99@") },
		"siblings":     func() ([]types.PersonSummary, error) { return relate.Siblings(doc, "@I99@") },
		"grandparents": func() ([]types.PersonSummary, error) { return relate.Grandparents(doc, "@I99@") },
		"auntsuncles":  func() ([]types.PersonSummary, error) { return relate.AuntsUncles(doc, "@I99@") },
		"cousins":      func() ([]types.PersonSummary, error) { return relate.Cousins(doc, "@I99@") },
	}
	for name, query := range queries {
		_, err := query()
		var notFound *types.NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("%s: got %v, want *NotFoundError", name, err)
		}
	}
}
