package document

import (
	"strings"

	"github.com/gedtree/gedtree/internal/validation"
	"github.com/gedtree/gedtree/types"
)

// customFactTags are the event/attribute tags surfaced as multi-valued
// custom facts on PersonDetails.
var customFactTags = []string{"EDUC", "RELI", "NATI", "TITL", "FACT", "EVEN"}

// splitName extracts (given name, surname) from an individual. The
// NAME value "First /Last/" is authoritative; GIVN and SURN sub-nodes
// fill in whichever part the value leaves empty.
func splitName(indi *types.Node) (first, last string) {
	name := indi.Child(types.TagName)
	if name == nil {
		return "", ""
	}

	value := name.Value
	if open := strings.Index(value, "/"); open >= 0 {
		first = strings.TrimSpace(value[:open])
		rest := value[open+1:]
		if close := strings.Index(rest, "/"); close >= 0 {
			last = strings.TrimSpace(rest[:close])
		} else {
			last = strings.TrimSpace(rest)
		}
	} else {
		first = strings.TrimSpace(value)
	}

	if first == "" {
		first = name.ChildValue(types.TagGivenName)
	}
	if last == "" {
		last = name.ChildValue(types.TagSurname)
	}
	return first, last
}

// eventYearPlace extracts the 4-digit year and place of an event
// sub-node (BIRT, DEAT). Year is 0 when absent.
func eventYearPlace(indi *types.Node, eventTag string) (year int, place string) {
	event := indi.Child(eventTag)
	if event == nil {
		return 0, ""
	}
	return validation.ExtractYear(event.ChildValue(types.TagDate)), event.ChildValue(types.TagPlace)
}

// Gender returns the individual's SEX value, defaulting to unknown.
func Gender(indi *types.Node) string {
	if g := indi.ChildValue(types.TagSex); g != "" {
		return g
	}
	return types.GenderUnknown
}

// Summary builds the flat projection of an individual.
func Summary(indi *types.Node) types.PersonSummary {
	first, last := splitName(indi)
	birthYear, birthPlace := eventYearPlace(indi, types.TagBirth)
	deathYear, _ := eventYearPlace(indi, types.TagDeath)

	return types.PersonSummary{
		ID:         indi.Pointer,
		FirstName:  first,
		LastName:   last,
		FullName:   strings.TrimSpace(first + " " + last),
		Gender:     Gender(indi),
		BirthYear:  birthYear,
		DeathYear:  deathYear,
		BirthPlace: birthPlace,
	}
}

// Details builds the full projection of an individual, including
// occupation, notes and custom facts.
func Details(indi *types.Node) types.PersonDetails {
	_, deathPlace := eventYearPlace(indi, types.TagDeath)

	details := types.PersonDetails{
		PersonSummary: Summary(indi),
		DeathPlace:    deathPlace,
		Occupation:    indi.ChildValue(types.TagOccupation),
		Notes:         indi.ChildValues(types.TagNote),
	}

	for _, tag := range customFactTags {
		values := indi.ChildValues(tag)
		if len(values) == 0 {
			continue
		}
		if details.CustomFacts == nil {
			details.CustomFacts = make(map[string][]string)
		}
		details.CustomFacts[tag] = values
	}
	return details
}

// PersonDetails resolves an identifier and returns the full
// projection, or a *types.NotFoundError.
func (d *Document) PersonDetails(identifier string) (types.PersonDetails, error) {
	indi, err := d.Resolve(identifier)
	if err != nil {
		return types.PersonDetails{}, err
	}
	return Details(indi), nil
}

// AllIndividuals returns summaries for every individual in document
// order.
func (d *Document) AllIndividuals() []types.PersonSummary {
	indis := d.Individuals()
	out := make([]types.PersonSummary, 0, len(indis))
	for _, n := range indis {
		out = append(out, Summary(n))
	}
	return out
}

// RootAncestors returns the individuals with no recorded parents.
func (d *Document) RootAncestors() []types.PersonSummary {
	var out []types.PersonSummary
	for _, n := range d.Individuals() {
		if len(d.ParentsOf(n)) == 0 {
			out = append(out, Summary(n))
		}
	}
	return out
}

// YoungestGeneration returns the individuals that are not a parent in
// any family with children.
func (d *Document) YoungestGeneration() []types.PersonSummary {
	var out []types.PersonSummary
	for _, n := range d.Individuals() {
		isParent := false
		for _, fam := range d.FamiliesAsSpouse(n) {
			if len(fam.ChildrenWithTag(types.TagChild)) > 0 {
				isParent = true
				break
			}
		}
		if !isParent {
			out = append(out, Summary(n))
		}
	}
	return out
}
