// Package mutate is the write side of the engine: creating
// individuals, families and sources, linking relationships, attaching
// citations and editing metadata. Every write validates before it
// touches the document; an ERROR-level finding leaves the store
// unmodified. Successful writes keep both sides of each family edge
// consistent (CHIL with FAMC, HUSB/WIFE with FAMS) and record a
// reversible operation with the given Recorder.
package mutate

import (
	"fmt"
	"strings"
	"time"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/internal/validation"
	"github.com/gedtree/gedtree/types"
)

// Recorder receives reversible operations for transaction grouping.
// A nil Recorder is valid: the write simply is not grouped.
type Recorder interface {
	Record(op types.Operation)
}

func record(rec Recorder, op types.Operation) {
	if rec != nil {
		rec.Record(op)
	}
}

// timeNow is swapped in tests for deterministic CHAN stamps.
var timeNow = time.Now

// SetTimeFunc overrides the clock used for CHAN stamps and change
// record timestamps. Pass nil to restore the real clock.
func SetTimeFunc(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	timeNow = fn
}

// Result is the tagged outcome of a mutation: either Success with the
// created record's id (and any non-blocking warnings), or a refusal
// carrying Error plus the warnings that triggered it. Refusals leave
// the document unmodified.
type Result struct {
	Success  bool     `json:"success"`
	ID       string   `json:"id,omitempty"`
	FamilyID string   `json:"family_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func failure(err string, warnings []string) Result {
	return Result{Success: false, Error: err, Warnings: warnings}
}

// NewIndividualID allocates the next individual pointer, @I<max+1>@
// over the numeric suffixes of existing individual pointers. Ids are
// monotonically increasing within a parsed document except that an id
// freed by undo can be handed out again by the fresh scan.
func NewIndividualID(d *document.Document) string {
	return fmt.Sprintf("@I%d@", d.MaxPointerSuffix(types.TagIndividual, "I")+1)
}

// NewFamilyID allocates the next family pointer, @F<max+1>@.
func NewFamilyID(d *document.Document) string {
	return fmt.Sprintf("@F%d@", d.MaxPointerSuffix(types.TagFamily, "F")+1)
}

// NewSourceID allocates the next source pointer, @S<max+1>@.
func NewSourceID(d *document.Document) string {
	return fmt.Sprintf("@S%d@", d.MaxPointerSuffix(types.TagSource, "S")+1)
}

// AddIndividualParams describes a new individual. Gender defaults to
// unknown (with a warning) when it is not M, F or U. Dates are GEDCOM
// date strings and are auto-corrected before use.
type AddIndividualParams struct {
	FirstName  string
	LastName   string
	Gender     string
	BirthDate  string
	BirthPlace string
	DeathDate  string
	DeathPlace string
	Notes      []string
}

// AddIndividual validates and creates a new INDI record: NAME with
// GIVN/SURN, SEX, optional BIRT/DEAT sub-trees, NOTE entries and a
// CHAN stamp. An ERROR-level date inconsistency refuses the write
// without touching the document.
func AddIndividual(d *document.Document, rec Recorder, p AddIndividualParams) Result {
	var warnings []string

	gender := p.Gender
	if gender != types.GenderMale && gender != types.GenderFemale && gender != types.GenderUnknown {
		warnings = append(warnings, fmt.Sprintf("Invalid gender %q, defaulting to %q (unknown)", gender, types.GenderUnknown))
		gender = types.GenderUnknown
	}

	birthDate, ws := validation.ValidateAndCorrectDate(p.BirthDate)
	warnings = append(warnings, ws...)
	deathDate, ws := validation.ValidateAndCorrectDate(p.DeathDate)
	warnings = append(warnings, ws...)

	warnings = append(warnings, validation.CheckDateConsistency(birthDate, deathDate, "")...)
	if types.HasBlockingError(warnings) {
		return failure("Date validation failed with errors. Please correct dates.", warnings)
	}

	id := NewIndividualID(d)
	indi := types.NewNode(0, id, types.TagIndividual, "")

	name := types.NewNode(1, "", types.TagName, fmt.Sprintf("%s /%s/", p.FirstName, p.LastName))
	name.AddChild(types.NewNode(2, "", types.TagGivenName, p.FirstName))
	name.AddChild(types.NewNode(2, "", types.TagSurname, p.LastName))
	indi.AddChild(name)

	indi.AddChild(types.NewNode(1, "", types.TagSex, gender))

	if event := eventNode(types.TagBirth, birthDate, p.BirthPlace); event != nil {
		indi.AddChild(event)
	}
	if event := eventNode(types.TagDeath, deathDate, p.DeathPlace); event != nil {
		indi.AddChild(event)
	}
	for _, note := range p.Notes {
		indi.AddChild(types.NewNode(1, "", types.TagNote, note))
	}
	indi.AddChild(changeStamp())

	d.Append(indi)

	record(rec, types.Operation{Type: types.OpAddIndividual, PersonID: id})

	return Result{Success: true, ID: id, Warnings: warnings}
}

// eventNode builds a BIRT/DEAT/MARR sub-tree with optional DATE and
// PLAC children, or nil when both are empty.
func eventNode(tag, date, place string) *types.Node {
	if date == "" && place == "" {
		return nil
	}
	event := types.NewNode(1, "", tag, "")
	if date != "" {
		event.AddChild(types.NewNode(2, "", types.TagDate, date))
	}
	if place != "" {
		event.AddChild(types.NewNode(2, "", types.TagPlace, place))
	}
	return event
}

// changeStamp builds the CHAN sub-tree recording when a record was
// created or last changed.
func changeStamp() *types.Node {
	now := timeNow()
	chan_ := types.NewNode(1, "", types.TagChange, "")
	date := types.NewNode(2, "", types.TagDate, strings.ToUpper(now.Format("02 Jan 2006")))
	date.AddChild(types.NewNode(3, "", types.TagTime, now.Format("15:04:05")))
	chan_.AddChild(date)
	return chan_
}
