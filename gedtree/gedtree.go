// Package gedtree provides an in-memory genealogical graph engine over
// GEDCOM documents: parsing and export, relationship traversal, tree
// projections, guarded mutation with transactional undo, and duplicate
// scoring.
//
// Most callers work through a Session, which owns one live document
// plus its change history and transaction state.
package gedtree

import (
	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/gedtree/match"
	"github.com/gedtree/gedtree/gedtree/mutate"
	"github.com/gedtree/gedtree/gedtree/session"
)

// Session is the main entry point; see the session package.
type Session = session.Session

// Document is the parsed record store; see the document package.
type Document = document.Document

// DuplicateMatch is one scored candidate duplicate.
type DuplicateMatch = match.DuplicateMatch

// Mutation parameter types, re-exported for collaborator convenience.
type (
	AddIndividualParams = mutate.AddIndividualParams
	SourceParams        = mutate.SourceParams
	CitationParams      = mutate.CitationParams
	FamilyParams        = mutate.FamilyParams
	MetadataUpdate      = mutate.MetadataUpdate
)

// NewSession creates an empty session with no document loaded.
func NewSession(opts ...session.Option) *Session {
	return session.New(opts...)
}

// Parse builds a standalone Document from GEDCOM text, outside any
// session.
func Parse(content string) (*Document, error) {
	return document.Parse(content)
}

// Export regenerates GEDCOM text for a document.
func Export(d *Document) string {
	return d.Export()
}
