package mutate

import (
	"fmt"
	"strconv"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/types"
)

// SourceParams describes a new SOUR record. Title is required; the
// URL and repository name, which have no first-class tag in the
// practical subset, are recorded as NOTE lines.
type SourceParams struct {
	Title        string
	Author       string
	Publication  string
	Abbreviation string
	Text         string
	URL          string
	Repository   string
}

// CreateSourceRecord creates a new SOUR record with a fresh @S<n>@
// pointer and a CHAN stamp.
func CreateSourceRecord(d *document.Document, rec Recorder, p SourceParams) Result {
	if p.Title == "" {
		return failure("Source title is required.", nil)
	}

	id := NewSourceID(d)
	sour := types.NewNode(0, id, types.TagSource, "")
	sour.AddChild(types.NewNode(1, "", types.TagTitle, p.Title))

	optional := []struct{ tag, value string }{
		{types.TagAuthor, p.Author},
		{types.TagPublication, p.Publication},
		{types.TagAbbreviation, p.Abbreviation},
		{types.TagText, p.Text},
	}
	for _, o := range optional {
		if o.value != "" {
			sour.AddChild(types.NewNode(1, "", o.tag, o.value))
		}
	}
	if p.URL != "" {
		sour.AddChild(types.NewNode(1, "", types.TagNote, "URL: "+p.URL))
	}
	if p.Repository != "" {
		sour.AddChild(types.NewNode(1, "", types.TagNote, "Repository: "+p.Repository))
	}
	sour.AddChild(changeStamp())

	d.Append(sour)

	record(rec, types.Operation{Type: types.OpAddSource, SourceID: id})

	return Result{Success: true, ID: id}
}

// CitationParams describes a source citation attached to an event of
// an individual. Quality is the GEDCOM QUAY assessment, 0 (unreliable)
// to 3 (primary evidence); values outside that range drop the QUAY
// line.
type CitationParams struct {
	PersonID     string
	SourceID     string
	EventType    string // BIRT, DEAT, NAME, ...
	Page         string
	Quality      int
	CitationText string
}

// AttachSourceCitation attaches a SOUR citation under the named event
// of an individual, creating the event sub-node if it does not exist.
func AttachSourceCitation(d *document.Document, rec Recorder, p CitationParams) Result {
	indi, err := d.Resolve(p.PersonID)
	if err != nil {
		return failure(fmt.Sprintf("Person not found: %s", p.PersonID), nil)
	}

	eventType := p.EventType
	if eventType == "" {
		eventType = types.TagBirth
	}

	event := indi.Child(eventType)
	if event == nil {
		event = types.NewNode(1, "", eventType, "")
		indi.AddChild(event)
	}

	sourceID := document.NormalizePointer(p.SourceID)
	citation := types.NewNode(2, "", types.TagSource, sourceID)
	if p.Page != "" {
		citation.AddChild(types.NewNode(3, "", types.TagPage, p.Page))
	}
	if p.Quality >= 0 && p.Quality <= 3 {
		citation.AddChild(types.NewNode(3, "", types.TagQuality, strconv.Itoa(p.Quality)))
	}
	if p.CitationText != "" {
		data := types.NewNode(3, "", types.TagData, "")
		data.AddChild(types.NewNode(4, "", types.TagText, p.CitationText))
		citation.AddChild(data)
	}
	event.AddChild(citation)

	record(rec, types.Operation{
		Type:      types.OpAttachSource,
		PersonID:  indi.Pointer,
		SourceID:  sourceID,
		EventType: eventType,
	})

	return Result{Success: true}
}
