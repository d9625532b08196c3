package mutate

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/types"
)

// MetadataUpdate selects the fields to change on an individual. Nil
// pointers leave the field untouched. CustomFacts maps a tag (EDUC,
// RELI, ...) to its new value; tags are uppercased before use.
type MetadataUpdate struct {
	Notes       *string
	Occupation  *string
	BirthPlace  *string
	DeathPlace  *string
	CustomFacts map[string]string
}

// UpdatePersonMetadata edits metadata fields in place and returns a
// ChangeRecord capturing old and new values for field-level undo.
// Place edits use the dotted BIRT.PLAC / DEAT.PLAC form and only apply
// when the event sub-node already exists. The record is also recorded
// as an update_metadata operation for transaction grouping.
func UpdatePersonMetadata(d *document.Document, rec Recorder, personID string, update MetadataUpdate) (*types.ChangeRecord, error) {
	indi, err := d.Resolve(personID)
	if err != nil {
		return nil, err
	}

	changeRecord := &types.ChangeRecord{
		ID:        uuid.NewString(),
		PersonID:  indi.Pointer,
		Timestamp: timeNow(),
	}

	if update.Notes != nil {
		old := joinedNotes(indi)
		setTagValue(indi, changeRecord, types.TagNote, *update.Notes, old)
	}
	if update.Occupation != nil {
		setTagValue(indi, changeRecord, types.TagOccupation, *update.Occupation, existingValue(indi, types.TagOccupation))
	}
	if update.BirthPlace != nil {
		setEventPlace(indi, changeRecord, types.TagBirth, *update.BirthPlace)
	}
	if update.DeathPlace != nil {
		setEventPlace(indi, changeRecord, types.TagDeath, *update.DeathPlace)
	}
	for tag, value := range update.CustomFacts {
		tag = strings.ToUpper(tag)
		setTagValue(indi, changeRecord, tag, value, existingValue(indi, tag))
	}

	record(rec, types.Operation{Type: types.OpUpdateMetadata, PersonID: indi.Pointer, Change: changeRecord})
	return changeRecord, nil
}

// setTagValue updates the first direct child with the given tag or
// creates one, appending the field change to the record.
func setTagValue(indi *types.Node, changeRecord *types.ChangeRecord, tag, value string, oldValue *string) {
	if existing := indi.Child(tag); existing != nil {
		changeRecord.Changes = append(changeRecord.Changes, types.FieldChange{
			Field:    tag,
			OldValue: oldValue,
			NewValue: value,
		})
		existing.Value = value
		return
	}

	changeRecord.Changes = append(changeRecord.Changes, types.FieldChange{
		Field:    tag,
		OldValue: nil,
		NewValue: value,
	})
	indi.AddChild(types.NewNode(1, "", tag, value))
}

// setEventPlace updates PLAC under an event sub-node using the dotted
// field form. Missing events are skipped: a place without its event
// has nowhere to live.
func setEventPlace(indi *types.Node, changeRecord *types.ChangeRecord, eventTag, place string) {
	event := indi.Child(eventTag)
	if event == nil {
		return
	}

	var oldValue *string
	plac := event.Child(types.TagPlace)
	if plac != nil {
		old := plac.Value
		oldValue = &old
	}

	changeRecord.Changes = append(changeRecord.Changes, types.FieldChange{
		Field:    eventTag + "." + types.TagPlace,
		OldValue: oldValue,
		NewValue: place,
	})

	if plac != nil {
		plac.Value = place
	} else {
		event.AddChild(types.NewNode(2, "", types.TagPlace, place))
	}
}

func existingValue(indi *types.Node, tag string) *string {
	if c := indi.Child(tag); c != nil {
		v := c.Value
		return &v
	}
	return nil
}

// joinedNotes returns all existing NOTE values joined by "; " for the
// undo record, or nil when the individual has none.
func joinedNotes(indi *types.Node) *string {
	notes := indi.ChildValues(types.TagNote)
	if len(notes) == 0 {
		return nil
	}
	joined := strings.Join(notes, "; ")
	return &joined
}
