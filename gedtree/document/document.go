// Package document holds the Record Store: the in-memory forest of
// GEDCOM nodes for one parsed document, plus identity resolution and
// person projections over it. Exactly one Document is live per
// session; uploading a new file replaces it wholesale.
package document

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gedtree/gedtree/gedtree/gedcom"
	"github.com/gedtree/gedtree/types"
)

// Document is the parsed record store. It owns the ordered list of
// top-level nodes (header, individuals, families, sources, trailer)
// and a pointer index over them. The index is an arena in the
// design-note sense: relationship traversal is map lookup by pointer
// string, never shared node references.
type Document struct {
	roots []*types.Node

	// index maps pointer -> top-level node. It is rebuilt eagerly at
	// mutation time: lookups never write it, so read-only queries are
	// safe to run concurrently with each other.
	index map[string]*types.Node
}

func newDocument(roots []*types.Node) *Document {
	d := &Document{roots: roots}
	d.Reindex()
	return d
}

// Parse builds a Document from GEDCOM text.
func Parse(content string) (*Document, error) {
	roots, err := gedcom.DecodeString(content)
	if err != nil {
		return nil, err
	}
	return newDocument(roots), nil
}

// ParseBytes builds a Document from raw bytes, applying the Latin-1
// fallback for non-UTF-8 input.
func ParseBytes(data []byte) (*Document, error) {
	roots, err := gedcom.Decode(data)
	if err != nil {
		return nil, err
	}
	return newDocument(roots), nil
}

// New returns an empty document containing only a header and trailer.
// Useful for building a tree from scratch through the mutation engine.
func New() *Document {
	return newDocument([]*types.Node{
		types.NewNode(0, "", types.TagHeader, ""),
		types.NewNode(0, "", types.TagTrailer, ""),
	})
}

// Export regenerates the GEDCOM text for the current state.
func (d *Document) Export() string {
	return gedcom.Encode(d.roots)
}

// Roots returns the top-level nodes in document order. The slice is
// shared; callers must not reorder it.
func (d *Document) Roots() []*types.Node {
	return d.roots
}

// Append adds a top-level record and reindexes. The record is inserted
// before a trailing TRLR node if one exists, so exports stay
// well-formed.
func (d *Document) Append(n *types.Node) {
	if last := len(d.roots) - 1; last >= 0 && d.roots[last].Tag == types.TagTrailer {
		d.roots = append(d.roots[:last], n, d.roots[last])
	} else {
		d.roots = append(d.roots, n)
	}
	d.Reindex()
}

// Remove deletes a top-level record. Returns false if the node is not
// a root of this document.
func (d *Document) Remove(n *types.Node) bool {
	for i, r := range d.roots {
		if r == n {
			d.roots = append(d.roots[:i], d.roots[i+1:]...)
			d.Reindex()
			return true
		}
	}
	return false
}

// Reindex recomputes the pointer index. Append and Remove call this
// themselves; callers editing record pointers directly must call it by
// hand.
func (d *Document) Reindex() {
	index := make(map[string]*types.Node, len(d.roots))
	for _, r := range d.roots {
		if r.Pointer != "" {
			index[r.Pointer] = r
		}
	}
	d.index = index
}

// NormalizePointer wraps a bare identifier in @ delimiters: "I1"
// becomes "@I1@". Already-delimited identifiers pass through.
func NormalizePointer(id string) string {
	if strings.HasPrefix(id, "@") {
		return id
	}
	return "@" + id + "@"
}

// byPointer returns the top-level node with the given (normalized)
// pointer and tag, or nil.
func (d *Document) byPointer(id, tag string) *types.Node {
	n := d.index[NormalizePointer(strings.TrimSpace(id))]
	if n != nil && n.Tag == tag {
		return n
	}
	return nil
}

// IndividualByID returns the INDI record with the given pointer, with
// or without @ delimiters, or nil.
func (d *Document) IndividualByID(id string) *types.Node {
	return d.byPointer(id, types.TagIndividual)
}

// FamilyByID returns the FAM record with the given pointer, or nil.
func (d *Document) FamilyByID(id string) *types.Node {
	return d.byPointer(id, types.TagFamily)
}

// SourceByID returns the SOUR record with the given pointer, or nil.
func (d *Document) SourceByID(id string) *types.Node {
	return d.byPointer(id, types.TagSource)
}

// IndividualByName finds an individual by case-insensitive name match
// against "first last": the first individual in document order whose
// full name equals or contains the query wins. First-match order is a
// deliberate simplicity tradeoff over best-match ranking; it is stable
// but not necessarily the closest name on large trees.
func (d *Document) IndividualByName(name string) *types.Node {
	want := strings.ToLower(strings.TrimSpace(name))

	for _, n := range d.Individuals() {
		first, last := splitName(n)
		full := strings.ToLower(strings.TrimSpace(first + " " + last))
		if strings.Contains(full, want) {
			return n
		}
	}
	return nil
}

// Resolve finds an individual by a loosely-specified identifier: a
// pointer with or without delimiters, or a name. Identifiers that look
// like ids (delimited, or short with a leading letter and at least one
// digit) are tried as ids first; name search is always the fallback.
// Returns a *types.NotFoundError when nothing matches.
func (d *Document) Resolve(identifier string) (*types.Node, error) {
	identifier = strings.TrimSpace(identifier)

	if looksLikeID(identifier) {
		if n := d.IndividualByID(identifier); n != nil {
			return n, nil
		}
	}
	if n := d.IndividualByName(identifier); n != nil {
		return n, nil
	}
	return nil, &types.NotFoundError{Identifier: identifier}
}

// looksLikeID reports whether an identifier should be tried as a
// pointer before falling back to name search: it is @-delimited, or
// short (at most 10 characters), starts with a letter, and contains a
// digit ("I1", "I23").
func looksLikeID(identifier string) bool {
	if strings.HasPrefix(identifier, "@") {
		return true
	}
	if identifier == "" || len(identifier) > 10 {
		return false
	}
	runes := []rune(identifier)
	if !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Individuals returns all INDI records in document order.
func (d *Document) Individuals() []*types.Node {
	return d.topLevel(types.TagIndividual)
}

// Families returns all FAM records in document order.
func (d *Document) Families() []*types.Node {
	return d.topLevel(types.TagFamily)
}

// Sources returns all pointered SOUR records in document order.
func (d *Document) Sources() []*types.Node {
	var out []*types.Node
	for _, r := range d.roots {
		if r.Tag == types.TagSource && r.Pointer != "" {
			out = append(out, r)
		}
	}
	return out
}

func (d *Document) topLevel(tag string) []*types.Node {
	var out []*types.Node
	for _, r := range d.roots {
		if r.Tag == tag {
			out = append(out, r)
		}
	}
	return out
}

// MaxPointerSuffix scans top-level records with the given tag whose
// pointers have the form @<prefix><number>@ and returns the largest
// numeric suffix. Malformed pointers are ignored. Returns 0 when no
// record matches.
func (d *Document) MaxPointerSuffix(tag, prefix string) int {
	max := 0
	for _, r := range d.roots {
		if r.Tag != tag || r.Pointer == "" {
			continue
		}
		body := strings.TrimSuffix(strings.TrimPrefix(r.Pointer, "@"), "@")
		numPart := strings.TrimPrefix(body, prefix)
		if numPart == body {
			continue
		}
		if num, err := strconv.Atoi(numPart); err == nil && num > max {
			max = num
		}
	}
	return max
}
