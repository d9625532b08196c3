package txn

import (
	"fmt"
	"strings"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/types"
)

// ApplyUndo reverses a single change record field by field: each field
// is restored to its old value, or the node removed entirely when it
// was created by the change (nil OldValue). One level of dotted
// PARENT.CHILD nesting is supported (BIRT.PLAC). Returns a
// *types.NotFoundError when the person no longer exists.
func ApplyUndo(d *document.Document, change *types.ChangeRecord) error {
	indi := d.IndividualByID(change.PersonID)
	if indi == nil {
		return &types.NotFoundError{Identifier: change.PersonID}
	}

	for _, fc := range change.Changes {
		if parentTag, childTag, ok := strings.Cut(fc.Field, "."); ok {
			parent := indi.Child(parentTag)
			if parent == nil {
				continue
			}
			undoField(parent, childTag, fc.OldValue)
		} else {
			undoField(indi, fc.Field, fc.OldValue)
		}
	}
	return nil
}

func undoField(parent *types.Node, tag string, oldValue *string) {
	node := parent.Child(tag)
	if node == nil {
		return
	}
	if oldValue == nil {
		parent.RemoveChild(node)
	} else {
		node.Value = *oldValue
	}
}

// ApplyTransactionUndo reverses a committed transaction by replaying
// its operations in reverse (LIFO) order. A failing operation is
// collected as an error string rather than aborting the rest; the
// result reports success iff no errors were collected.
func ApplyTransactionUndo(d *document.Document, rec *types.TransactionRecord) types.UndoResult {
	var errs []string
	undone := 0

	for i := len(rec.Operations) - 1; i >= 0; i-- {
		op := rec.Operations[i]
		switch op.Type {
		case types.OpAddIndividual:
			if indi := d.IndividualByID(op.PersonID); indi != nil {
				d.Remove(indi)
				undone++
			} else {
				errs = append(errs, fmt.Sprintf("could not find person to remove: %s", op.PersonID))
			}

		case types.OpAddSource:
			if sour := d.SourceByID(op.SourceID); sour != nil {
				d.Remove(sour)
				undone++
			} else {
				errs = append(errs, fmt.Sprintf("could not find source to remove: %s", op.SourceID))
			}

		case types.OpAttachSource:
			indi := d.IndividualByID(op.PersonID)
			if indi == nil {
				errs = append(errs, fmt.Sprintf("could not find person for source removal: %s", op.PersonID))
				break
			}
			if event := indi.Child(op.EventType); event != nil {
				if citation := event.Child(types.TagSource); citation != nil {
					event.RemoveChild(citation)
					undone++
				}
			}

		case types.OpAddFamily:
			fam := d.FamilyByID(op.FamilyID)
			if fam == nil {
				errs = append(errs, fmt.Sprintf("could not find family to remove: %s", op.FamilyID))
				break
			}
			d.Remove(fam)
			undone++
			stripFamilyRefs(d, op.FamilyID, op.ReferencedIndividuals)

		case types.OpUpdateMetadata:
			if op.Change == nil {
				errs = append(errs, "update_metadata operation without change record")
				break
			}
			if err := ApplyUndo(d, op.Change); err != nil {
				errs = append(errs, err.Error())
			} else {
				undone++
			}

		default:
			errs = append(errs, fmt.Sprintf("unknown operation type: %s", op.Type))
		}
	}

	return types.UndoResult{
		Success:          len(errs) == 0,
		OperationsUndone: undone,
		Errors:           errs,
	}
}

// stripFamilyRefs removes FAMC/FAMS references to a deleted family
// from the individuals the transaction recorded as referenced.
func stripFamilyRefs(d *document.Document, familyID string, referenced []string) {
	for _, refID := range referenced {
		indi := d.IndividualByID(refID)
		if indi == nil {
			continue
		}
		var stale []*types.Node
		for _, c := range indi.Children {
			if (c.Tag == types.TagFamilyAsChild || c.Tag == types.TagFamilyAsSpouse) && c.Value == familyID {
				stale = append(stale, c)
			}
		}
		for _, c := range stale {
			indi.RemoveChild(c)
		}
	}
}
