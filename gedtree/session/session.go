// Package session ties the engine together for the collaborator
// layer: it owns the live Document, the change history and the
// transaction state, and serializes access through a read/write lock
// manager. A Session replaces the module-level globals a naive port
// would use; everything the surrounding web or agent layer needs goes
// through one Session value.
package session

import (
	"fmt"
	"log/slog"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/gedtree/match"
	"github.com/gedtree/gedtree/gedtree/mutate"
	"github.com/gedtree/gedtree/gedtree/relate"
	"github.com/gedtree/gedtree/gedtree/txn"
	"github.com/gedtree/gedtree/types"
)

// ErrNoDocument is returned by operations invoked before any GEDCOM
// content has been loaded.
var ErrNoDocument = fmt.Errorf("no GEDCOM document loaded")

// Session owns one live document plus the mutable state around it:
// the undo history of metadata changes and the at-most-one open
// transaction. Loading new content replaces the document wholesale and
// resets both.
type Session struct {
	locks   *lockManager
	doc     *document.Document
	history []types.ChangeRecord
	txns    *txn.Manager
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for operation logging. The default
// is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates an empty session with no document loaded.
func New(opts ...Option) *Session {
	s := &Session{
		locks: newLockManager(),
		txns:  txn.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// LoadString parses GEDCOM text and installs it as the live document,
// discarding the previous document, history and any open transaction.
func (s *Session) LoadString(content string) error {
	return s.locks.execute(writeOperation, func() error {
		doc, err := document.Parse(content)
		if err != nil {
			return err
		}
		s.install(doc)
		return nil
	})
}

// LoadBytes is LoadString for raw bytes, with the Latin-1 fallback for
// non-UTF-8 input.
func (s *Session) LoadBytes(data []byte) error {
	return s.locks.execute(writeOperation, func() error {
		doc, err := document.ParseBytes(data)
		if err != nil {
			return err
		}
		s.install(doc)
		return nil
	})
}

// NewDocument installs an empty document for building a tree from
// scratch.
func (s *Session) NewDocument() {
	_ = s.locks.execute(writeOperation, func() error {
		s.install(document.New())
		return nil
	})
}

func (s *Session) install(doc *document.Document) {
	s.doc = doc
	s.history = nil
	s.txns = txn.NewManager()
	s.logger.Info("document installed",
		"individuals", len(doc.Individuals()),
		"families", len(doc.Families()))
}

// Loaded reports whether a document is installed.
func (s *Session) Loaded() bool {
	var loaded bool
	_ = s.locks.execute(readOperation, func() error {
		loaded = s.doc != nil
		return nil
	})
	return loaded
}

// Export regenerates the GEDCOM text for the current document.
func (s *Session) Export() (string, error) {
	var out string
	err := s.locks.execute(readOperation, func() error {
		if s.doc == nil {
			return ErrNoDocument
		}
		out = s.doc.Export()
		return nil
	})
	return out, err
}

// read runs fn against the document under the read lock.
func (s *Session) read(fn func(d *document.Document) error) error {
	return s.locks.execute(readOperation, func() error {
		if s.doc == nil {
			return ErrNoDocument
		}
		return fn(s.doc)
	})
}

// write runs fn against the document under the exclusive lock.
func (s *Session) write(fn func(d *document.Document) error) error {
	return s.locks.execute(writeOperation, func() error {
		if s.doc == nil {
			return ErrNoDocument
		}
		return fn(s.doc)
	})
}

// --- Read queries -----------------------------------------------------

// PersonDetails resolves an identifier to the full person projection.
func (s *Session) PersonDetails(identifier string) (types.PersonDetails, error) {
	var details types.PersonDetails
	err := s.read(func(d *document.Document) error {
		var err error
		details, err = d.PersonDetails(identifier)
		return err
	})
	return details, err
}

// AllIndividuals lists every individual in document order.
func (s *Session) AllIndividuals() ([]types.PersonSummary, error) {
	var out []types.PersonSummary
	err := s.read(func(d *document.Document) error {
		out = d.AllIndividuals()
		return nil
	})
	return out, err
}

// RootAncestors lists individuals with no recorded parents.
func (s *Session) RootAncestors() ([]types.PersonSummary, error) {
	var out []types.PersonSummary
	err := s.read(func(d *document.Document) error {
		out = d.RootAncestors()
		return nil
	})
	return out, err
}

// YoungestGeneration lists individuals with no recorded children.
func (s *Session) YoungestGeneration() ([]types.PersonSummary, error) {
	var out []types.PersonSummary
	err := s.read(func(d *document.Document) error {
		out = d.YoungestGeneration()
		return nil
	})
	return out, err
}

type relationQuery func(*document.Document, string) ([]types.PersonSummary, error)

func (s *Session) relation(query relationQuery, identifier string) ([]types.PersonSummary, error) {
	var out []types.PersonSummary
	err := s.read(func(d *document.Document) error {
		var err error
		out, err = query(d, identifier)
		return err
	})
	return out, err
}

// Parents, Children, Spouses, Siblings, Grandparents, AuntsUncles and
// Cousins resolve the identifier and walk the family-link graph. They
// return a *types.NotFoundError for an unknown person; an empty result
// is a valid outcome, not an error.

func (s *Session) Parents(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Parents, identifier)
}

func (s *Session) Children(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Children, identifier)
}

func (s *Session) Spouses(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Spouses, identifier)
}

func (s *Session) Siblings(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Siblings, identifier)
}

func (s *Session) Grandparents(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Grandparents, identifier)
}

func (s *Session) AuntsUncles(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.AuntsUncles, identifier)
}

func (s *Session) Cousins(identifier string) ([]types.PersonSummary, error) {
	return s.relation(relate.Cousins, identifier)
}

// AncestorTree builds the ancestor tree projection for a person,
// bounded by maxDepth. Returns nil when the id matches nobody.
func (s *Session) AncestorTree(personID string, maxDepth int) (*types.TreeNode, error) {
	var tree *types.TreeNode
	err := s.read(func(d *document.Document) error {
		tree = relate.AncestorTree(d, personID, maxDepth)
		return nil
	})
	return tree, err
}

// DescendantTree builds the descendant tree projection.
func (s *Session) DescendantTree(personID string, maxDepth int) (*types.TreeNode, error) {
	var tree *types.TreeNode
	err := s.read(func(d *document.Document) error {
		tree = relate.DescendantTree(d, personID, maxDepth)
		return nil
	})
	return tree, err
}

// BidirectionalTree builds the two-direction tree projection.
func (s *Session) BidirectionalTree(personID string, ancestorDepth, descendantDepth int) (*types.TreeNode, error) {
	var tree *types.TreeNode
	err := s.read(func(d *document.Document) error {
		tree = relate.BidirectionalTree(d, personID, ancestorDepth, descendantDepth)
		return nil
	})
	return tree, err
}

// FindPotentialDuplicates scores a candidate against every individual
// in the document.
func (s *Session) FindPotentialDuplicates(candidate types.PersonSummary, threshold float64) ([]match.DuplicateMatch, error) {
	var matches []match.DuplicateMatch
	err := s.read(func(d *document.Document) error {
		matches = match.FindPotentialDuplicates(d, candidate, threshold)
		return nil
	})
	return matches, err
}

// --- Mutations --------------------------------------------------------

// AddIndividual creates a new individual; see mutate.AddIndividual.
func (s *Session) AddIndividual(p mutate.AddIndividualParams) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.AddIndividual(d, s.txns, p)
		s.logMutation("add_individual", result)
		return nil
	})
	return result, err
}

// CreateSourceRecord creates a new source record.
func (s *Session) CreateSourceRecord(p mutate.SourceParams) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.CreateSourceRecord(d, s.txns, p)
		s.logMutation("add_source", result)
		return nil
	})
	return result, err
}

// AttachSourceCitation attaches a source citation to an event of an
// individual.
func (s *Session) AttachSourceCitation(p mutate.CitationParams) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.AttachSourceCitation(d, s.txns, p)
		s.logMutation("attach_source", result)
		return nil
	})
	return result, err
}

// CreateFamilyRecord creates a new family record.
func (s *Session) CreateFamilyRecord(p mutate.FamilyParams) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.CreateFamilyRecord(d, s.txns, p)
		s.logMutation("add_family", result)
		return nil
	})
	return result, err
}

// LinkParentChild links a parent to a child, creating or reusing a
// family; the circular-ancestry check is always on through this entry
// point.
func (s *Session) LinkParentChild(parentID, childID string) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.AddFamilyRelationship(d, s.txns, parentID, childID, true)
		s.logMutation("link_parent_child", result)
		return nil
	})
	return result, err
}

// LinkSpouses links two individuals as spouses in a new family.
func (s *Session) LinkSpouses(spouse1ID, spouse2ID, marriageDate, marriagePlace string) (mutate.Result, error) {
	var result mutate.Result
	err := s.write(func(d *document.Document) error {
		result = mutate.AddSpouseRelationship(d, s.txns, spouse1ID, spouse2ID, marriageDate, marriagePlace)
		s.logMutation("link_spouses", result)
		return nil
	})
	return result, err
}

// UpdatePersonMetadata edits metadata fields and appends the resulting
// change record to the session's undo history.
func (s *Session) UpdatePersonMetadata(personID string, update mutate.MetadataUpdate) (*types.ChangeRecord, error) {
	var change *types.ChangeRecord
	err := s.write(func(d *document.Document) error {
		var err error
		change, err = mutate.UpdatePersonMetadata(d, s.txns, personID, update)
		if err != nil {
			return err
		}
		s.history = append(s.history, *change)
		return nil
	})
	return change, err
}

func (s *Session) logMutation(op string, result mutate.Result) {
	if result.Success {
		s.logger.Info("mutation applied", "op", op, "id", result.ID, "family_id", result.FamilyID, "warnings", len(result.Warnings))
	} else {
		s.logger.Warn("mutation refused", "op", op, "error", result.Error)
	}
}

// --- Change history ---------------------------------------------------

// History returns the accumulated change records, oldest first.
func (s *Session) History() []types.ChangeRecord {
	var out []types.ChangeRecord
	_ = s.locks.execute(readOperation, func() error {
		out = append(out, s.history...)
		return nil
	})
	return out
}

// PopChange removes and returns the most recent change record, or nil
// when the history is empty.
func (s *Session) PopChange() *types.ChangeRecord {
	var change *types.ChangeRecord
	_ = s.locks.execute(writeOperation, func() error {
		if len(s.history) == 0 {
			return nil
		}
		last := s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
		change = &last
		return nil
	})
	return change
}

// UndoLastChange pops the most recent change record and reverses it.
// Returns the undone record, or nil when the history is empty.
func (s *Session) UndoLastChange() (*types.ChangeRecord, error) {
	var change *types.ChangeRecord
	err := s.write(func(d *document.Document) error {
		if len(s.history) == 0 {
			return nil
		}
		last := s.history[len(s.history)-1]
		if err := txn.ApplyUndo(d, &last); err != nil {
			return err
		}
		s.history = s.history[:len(s.history)-1]
		change = &last
		return nil
	})
	return change, err
}

// --- Transactions -----------------------------------------------------

// BeginTransaction opens a transaction; nested transactions are
// rejected with txn.ErrTransactionActive.
func (s *Session) BeginTransaction(description string) (*types.TransactionRecord, error) {
	var rec *types.TransactionRecord
	err := s.locks.execute(writeOperation, func() error {
		var err error
		rec, err = s.txns.Begin(description)
		return err
	})
	return rec, err
}

// CommitTransaction packages and clears the open transaction.
func (s *Session) CommitTransaction() (*types.TransactionRecord, error) {
	var rec *types.TransactionRecord
	err := s.locks.execute(writeOperation, func() error {
		var err error
		rec, err = s.txns.Commit()
		return err
	})
	return rec, err
}

// RollbackTransaction discards the open transaction without producing
// a record.
func (s *Session) RollbackTransaction() error {
	return s.locks.execute(writeOperation, func() error {
		return s.txns.Rollback()
	})
}

// UndoTransaction reverses a committed transaction record in LIFO
// order.
func (s *Session) UndoTransaction(rec *types.TransactionRecord) (types.UndoResult, error) {
	var result types.UndoResult
	err := s.write(func(d *document.Document) error {
		result = txn.ApplyTransactionUndo(d, rec)
		s.logger.Info("transaction undone", "id", rec.ID, "operations_undone", result.OperationsUndone, "errors", len(result.Errors))
		return nil
	})
	return result, err
}
