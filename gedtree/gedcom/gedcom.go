// Package gedcom reads and writes the GEDCOM line grammar: a sequence
// of "LEVEL [POINTER] TAG [VALUE]" lines, hierarchical by level
// number. Parsing is permissive by design; this is not a conformance
// validator, it accepts the practical subset the engine operates on.
package gedcom

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/gedtree/gedtree/types"
)

// ParseError reports a structurally invalid line. The document is not
// modified when parsing fails.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gedcom: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Decode parses raw GEDCOM bytes into the ordered list of top-level
// nodes. Input is read as UTF-8; bytes that are not valid UTF-8 are
// re-decoded as Latin-1, which always succeeds.
func Decode(data []byte) ([]*types.Node, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err == nil {
			data = decoded
		}
	}
	return DecodeString(string(data))
}

// DecodeString parses GEDCOM text into the ordered list of top-level
// nodes. Blank lines are skipped; a UTF-8 BOM on the first line is
// dropped.
func DecodeString(content string) ([]*types.Node, error) {
	var roots []*types.Node

	// stack[i] is the most recent node at level i.
	var stack []*types.Node

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		node, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		}

		if node.Level == 0 {
			roots = append(roots, node)
			stack = stack[:0]
			stack = append(stack, node)
			continue
		}

		if node.Level > len(stack) {
			return nil, &ParseError{Line: i + 1, Text: line, Reason: fmt.Sprintf("level %d has no parent at level %d", node.Level, node.Level-1)}
		}
		stack = stack[:node.Level]
		stack[node.Level-1].AddChild(node)
		stack = append(stack, node)
	}

	if len(roots) == 0 {
		return nil, &ParseError{Line: 0, Text: "", Reason: "empty document"}
	}
	return roots, nil
}

func parseLine(lineNo int, line string) (*types.Node, error) {
	rest := strings.TrimLeft(line, " \t")

	levelStr, tail, _ := strings.Cut(rest, " ")
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 {
		return nil, &ParseError{Line: lineNo, Text: line, Reason: "invalid level"}
	}

	tail = strings.TrimLeft(tail, " ")
	var pointer string
	if strings.HasPrefix(tail, "@") {
		end := strings.Index(tail[1:], "@")
		if end < 0 {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "unterminated pointer"}
		}
		pointer = tail[:end+2]
		tail = strings.TrimLeft(tail[end+2:], " ")
	}

	tag, value, _ := strings.Cut(tail, " ")
	if tag == "" {
		return nil, &ParseError{Line: lineNo, Text: line, Reason: "missing tag"}
	}

	return types.NewNode(level, pointer, tag, value), nil
}

// Encode regenerates GEDCOM text by depth-first pre-order traversal of
// the node forest, preserving insertion order. Levels are recomputed
// from tree depth, so a round-trip normalizes any inconsistent stored
// levels.
func Encode(roots []*types.Node) string {
	var b strings.Builder
	for _, root := range roots {
		encodeNode(&b, root, 0)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func encodeNode(b *strings.Builder, n *types.Node, depth int) {
	b.WriteString(strconv.Itoa(depth))
	if n.Pointer != "" {
		b.WriteByte(' ')
		b.WriteString(n.Pointer)
	}
	b.WriteByte(' ')
	b.WriteString(n.Tag)
	if n.Value != "" {
		b.WriteByte(' ')
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')

	for _, c := range n.Children {
		encodeNode(b, c, depth+1)
	}
}
