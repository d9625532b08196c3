package types

import "time"

// FieldChange records a single field edit on an individual. Field is a
// plain tag ("OCCU") or a dotted PARENT.CHILD path ("BIRT.PLAC"). A nil
// OldValue means the node did not exist before the edit, so undo
// removes it instead of restoring a value.
type FieldChange struct {
	Field    string  `json:"field"`
	OldValue *string `json:"old_value"`
	NewValue string  `json:"new_value"`
}

// ChangeRecord is produced by a metadata update and holds everything
// needed to reverse it field by field.
type ChangeRecord struct {
	ID        string        `json:"id"`
	PersonID  string        `json:"person_id"`
	Timestamp time.Time     `json:"timestamp"`
	Changes   []FieldChange `json:"changes"`
}

// OperationType identifies a reversible mutation recorded inside a
// transaction.
type OperationType string

const (
	OpAddIndividual  OperationType = "add_individual"
	OpAddSource      OperationType = "add_source"
	OpAttachSource   OperationType = "attach_source"
	OpAddFamily      OperationType = "add_family"
	OpUpdateMetadata OperationType = "update_metadata"
)

// Operation carries enough data for a recorded mutation to reverse
// itself. Only the fields relevant to Type are set.
type Operation struct {
	Type OperationType `json:"type"`

	PersonID  string `json:"person_id,omitempty"`
	SourceID  string `json:"source_id,omitempty"`
	FamilyID  string `json:"family_id,omitempty"`
	EventType string `json:"event_type,omitempty"`

	// ReferencedIndividuals lists individuals that received FAMC/FAMS
	// references when a family was created; undoing the family strips
	// those references again.
	ReferencedIndividuals []string `json:"referenced_individuals,omitempty"`

	// Change holds the change record for update_metadata operations.
	Change *ChangeRecord `json:"change_record,omitempty"`
}

// TransactionRecord packages the operations of a committed transaction
// for later LIFO undo.
type TransactionRecord struct {
	ID             string      `json:"id"`
	Description    string      `json:"description"`
	StartedAt      time.Time   `json:"started_at"`
	CommittedAt    time.Time   `json:"committed_at"`
	Operations     []Operation `json:"operations"`
	OperationCount int         `json:"operation_count"`
}

// UndoResult reports the outcome of undoing a transaction. Success is
// true iff no per-operation error was collected.
type UndoResult struct {
	Success          bool     `json:"success"`
	OperationsUndone int      `json:"operations_undone"`
	Errors           []string `json:"errors,omitempty"`
}
